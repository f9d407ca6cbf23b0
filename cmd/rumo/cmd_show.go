package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rumo/cmd/rumo/ui"
	"rumo/internal/logging"
	"rumo/internal/persona"
	"rumo/internal/store"
)

var (
	showRaw   bool
	showWatch bool
)

// showCmd prints the finished document.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print your Chief of Staff prompt",
	Long: `Renders the saved Chief of Staff document for the terminal.
Use --raw for plain markdown (for piping) and --watch to re-print whenever the
profile file changes, for example while another terminal runs the interview.`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print plain markdown instead of rendering it")
	showCmd.Flags().BoolVarP(&showWatch, "watch", "w", false, "Re-print on every save (file backend only)")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if !showWatch {
		return printProfile(ctx, os.Stdout, st)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-sigCh:
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return watchProfile(gctx, os.Stdout, st)
	})
	return g.Wait()
}

// printProfile writes the document, or a progress note when the interview
// is not finished yet.
func printProfile(ctx context.Context, out io.Writer, st store.Store) error {
	rec, err := loadRecord(ctx, st)
	if err != nil {
		return err
	}
	if !rec.Completed {
		answered := len(rec.Profile)
		fmt.Fprintf(out, "Interview in progress: %d of %d questions answered.\n", answered, persona.Schema().TotalSteps())
		fmt.Fprintln(out, "Run 'rumo' to finish it.")
		return nil
	}

	doc := persona.Render(rec.Profile)
	if showRaw {
		fmt.Fprint(out, doc)
		return nil
	}
	rendered, err := ui.NewDocumentRenderer(cfg.UI).Render(doc, 0)
	if err != nil {
		logging.For(logger, logging.CategoryUI).Warn("markdown render failed, printing raw", zap.Error(err))
		rendered = doc
	}
	fmt.Fprint(out, rendered)
	return nil
}

// watchProfile prints the profile now and again after every settled change
// of the profile file, until ctx is done.
func watchProfile(ctx context.Context, out io.Writer, st store.Store) error {
	fs, ok := st.(*store.FileStore)
	if !ok {
		return fmt.Errorf("--watch needs the file store backend (current: %s)", st.Describe())
	}
	w, err := store.NewWatcher(fs.Path(), logging.For(logger, logging.CategoryStore))
	if err != nil {
		return fmt.Errorf("failed to watch profile: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	defer w.Stop()

	show := func() {
		if err := printProfile(ctx, out, st); err != nil {
			fmt.Fprintln(out, err)
		}
	}
	divider := ui.DefaultStyles().RenderDivider(40)
	show()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", fs.Path())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			logging.StoreDebug("profile changed, re-rendering")
			fmt.Fprintln(out, divider)
			show()
		}
	}
}
