package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full-screen program and blocks until the user leaves.
// The returned model reflects the final state.
func Run(ctx context.Context, opts Options) (Model, error) {
	if opts.Context == nil {
		opts.Context = ctx
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("interview program failed: %w", err)
	}
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, nil
}
