package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Write encodes b in format and writes it to w.
func Write(w io.Writer, format string, b Bundle) error {
	data, err := Render(format, b)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile encodes b in format and writes it to path, creating parent
// directories as needed.
func WriteFile(path, format string, b Bundle) error {
	data, err := Render(format, b)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteFiles writes one file per format into dir, named base plus the
// format's extension. Formats are encoded concurrently; the first failure
// cancels the rest. Returned paths follow the order of formats.
func WriteFiles(ctx context.Context, dir, base string, formats []string, b Bundle, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Resolve everything up front so an unknown name fails before any write.
	resolved := make([]Exporter, len(formats))
	for i, f := range formats {
		e, err := Lookup(f)
		if err != nil {
			return nil, err
		}
		resolved[i] = e
	}

	paths := make([]string, len(resolved))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range resolved {
		i, e := i, e
		paths[i] = filepath.Join(dir, base+e.Extension())
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := WriteFile(paths[i], e.Name(), b); err != nil {
				return fmt.Errorf("%s export: %w", e.Name(), err)
			}
			logger.Debug("exported", zap.String("format", e.Name()), zap.String("path", paths[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
