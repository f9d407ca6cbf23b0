package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"rumo/internal/config"
)

// DocumentRenderer renders the Chief of Staff markdown for the terminal
// with glamour. Renderers are built per wrap width and reused.
type DocumentRenderer struct {
	style string
	wrap  int
	cache *RenderCache

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewDocumentRenderer builds a renderer from the ui config section.
func NewDocumentRenderer(cfg config.UIConfig) *DocumentRenderer {
	style := strings.TrimSpace(cfg.GlamourStyle)
	if style == "" {
		style = "auto"
	}
	wrap := cfg.WordWrap
	if wrap <= 0 {
		wrap = 80
	}
	return &DocumentRenderer{
		style:     style,
		wrap:      wrap,
		cache:     NewRenderCache(32),
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render returns md styled for a terminal width columns wide. A width of
// zero means unknown and uses the configured wrap.
func (r *DocumentRenderer) Render(md string, width int) (string, error) {
	wrap := r.wrapFor(width)
	key := ComputeKey(r.style, wrap, md)
	return r.cache.GetOrCompute(key, func() (string, error) {
		tr, err := r.termRenderer(wrap)
		if err != nil {
			return "", err
		}
		out, err := tr.Render(md)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(out, "\n") + "\n", nil
	})
}

func (r *DocumentRenderer) wrapFor(width int) int {
	wrap := r.wrap
	if width > 0 && width-4 < wrap {
		wrap = width - 4
	}
	if wrap < 20 {
		wrap = 20
	}
	return wrap
}

func (r *DocumentRenderer) termRenderer(wrap int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.renderers[wrap]; ok {
		return tr, nil
	}

	styleOpt := glamour.WithAutoStyle()
	if r.style != "auto" {
		styleOpt = glamour.WithStylePath(r.style)
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, err
	}
	r.renderers[wrap] = tr
	return tr, nil
}
