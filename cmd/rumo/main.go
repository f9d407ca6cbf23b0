// Package main implements rumo, a terminal interview that builds a
// personal "Chief of Staff" system prompt from 22 questions about how you
// work.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rumo/cmd/rumo/ui"
	"rumo/internal/config"
	"rumo/internal/export"
	"rumo/internal/interview"
	"rumo/internal/logging"
	"rumo/internal/persona"
	"rumo/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rumo",
	Short: "RUMO - build your personal Chief of Staff prompt",
	Long: `rumo walks you through a 22-question interview about how you work,
what you protect, and what kind of support actually helps. Your answers
become a system prompt for an AI "Chief of Staff" that you can paste into
any assistant.

Run without arguments to start (or resume) the interactive interview.
Progress is saved after every answer.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (debug level, also to stderr)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.rumo/config.yaml)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initRuntime loads configuration and builds the logger. The interactive
// program owns the terminal, so it only ever logs to the configured file.
func initRuntime(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	interactive := !cmd.HasParent()
	l, err := logging.New(logging.Options{
		Level:   c.Logging.Level,
		Format:  c.Logging.Format,
		File:    c.Logging.File,
		Stderr:  verbose && !interactive,
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, logger = c, l
	logging.Initialize(l)
	logging.Boot("rumo starting: command=%s config=%s store=%s", cmd.Name(), path, c.Store.Backend)
	return nil
}

// commandContext returns the command's context, or Background when the
// command was invoked directly rather than through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg, logging.For(logger, logging.CategoryStore))
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}
	return st, nil
}

// loadRecord returns the saved record, or a friendly error when nothing
// has been saved yet.
func loadRecord(ctx context.Context, st store.Store) (*store.Record, error) {
	rec, err := st.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.New("no saved profile yet - run 'rumo' or 'rumo setup' first")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	clean, dropped := rec.Profile.Sanitize(persona.Schema())
	if len(dropped) > 0 {
		logging.For(logger, logging.CategoryStore).Warn("dropping fields the interview no longer asks",
			zap.Strings("fields", dropped))
	}
	rec.Profile = clean
	return rec, nil
}

// bundleFor assembles an export bundle. The document is only present for
// completed profiles.
func bundleFor(rec *store.Record) export.Bundle {
	b := export.Bundle{
		Profile:   rec.Profile,
		Completed: rec.Completed,
		Revision:  rec.Revision,
		UpdatedAt: rec.UpdatedAt,
		Schema:    persona.Schema(),
	}
	if rec.Completed {
		b.Document = persona.Render(rec.Profile)
	}
	return b
}

// runInteractive launches the full-screen interview, resuming saved
// progress when there is any.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	schema := persona.Schema()
	storeLog := logging.For(logger, logging.CategoryStore)
	start := func(opts ...interview.WizardOption) *interview.Wizard {
		w, rec := store.Resume(ctx, st, schema, storeLog, opts...)
		if rec != nil {
			logging.Wizard("resumed profile revision=%s completed=%t answered=%d", rec.Revision, rec.Completed, len(rec.Profile))
		}
		return w
	}

	m, err := ui.Run(ctx, ui.Options{
		Schema:    schema,
		Renderer:  persona.Renderer(),
		Start:     start,
		Store:     st,
		Clipboard: export.NewClipboard(cfg.Export.Clipboard, logging.For(logger, logging.CategoryExport)),
		UI:        cfg.UI,
		Logger:    logging.For(logger, logging.CategoryUI),
		Context:   ctx,
	})
	if err != nil {
		return err
	}

	switch {
	case m.Finished():
		fmt.Println("Your Chief of Staff prompt is saved.")
		fmt.Println("Run 'rumo copy' to put it on the clipboard or 'rumo export' to write it to a file.")
	case !m.Completed():
		fmt.Println(progressNote(m.Wizard()))
	}
	return nil
}

// progressNote reports how many answers are saved, not where the cursor
// stopped: a resumed interview starts on the first question.
func progressNote(w *interview.Wizard) string {
	return fmt.Sprintf("Progress saved (%d of %d answered). Run 'rumo' to pick up where you left off.",
		w.Answers().Len(), w.Schema().TotalSteps())
}
