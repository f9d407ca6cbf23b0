package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rumo/internal/export"
	"rumo/internal/logging"
	"rumo/internal/persona"
)

var (
	exportFormat string
	exportOutput string
	exportAll    string
)

// exportCmd writes the profile in one or more formats.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your profile (md, json, yaml, toml, mangle)",
	Long: `Writes the saved profile to stdout or a file.

Formats:
  md      the Chief of Staff prompt as markdown (completed profiles only)
  json    answers plus status, revision and document
  yaml    same shape as json
  toml    answers only
  mangle  answers as Mangle facts, for querying with a Datalog engine`,
	Example: `  rumo export --format md -o cos.md
  rumo export --all ./out`,
	RunE: runExport,
}

// copyCmd puts the finished document on the clipboard.
var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy your Chief of Staff prompt to the clipboard",
	RunE:  runCopy,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format (default from config, usually md)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportAll, "all", "", "Write every format into this directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := loadRecord(ctx, st)
	if err != nil {
		return err
	}
	b := bundleFor(rec)
	exportLog := logging.For(logger, logging.CategoryExport)

	if exportAll != "" {
		formats := export.Formats()
		if !rec.Completed {
			// The markdown document only exists once the interview is done.
			formats = without(formats, "md")
		}
		paths, err := export.WriteFiles(ctx, exportAll, "rumo-profile", formats, b, exportLog)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	}

	format := exportFormat
	if format == "" {
		format = cfg.Export.Format
	}
	if _, err := export.Lookup(format); err != nil {
		return err
	}
	if isMarkdown(format) && !rec.Completed {
		return errors.New("the interview is not finished yet - run 'rumo' to complete it, or export --format json")
	}

	if exportOutput != "" {
		if err := export.WriteFile(exportOutput, format, b); err != nil {
			return err
		}
		exportLog.Info("exported profile", zap.String("format", format), zap.String("path", exportOutput))
		fmt.Printf("Wrote %s\n", exportOutput)
		return nil
	}
	return export.Write(os.Stdout, format, b)
}

func runCopy(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := loadRecord(ctx, st)
	if err != nil {
		return err
	}
	if !rec.Completed {
		return errors.New("the interview is not finished yet - run 'rumo' to complete it")
	}

	clip := export.NewClipboard(cfg.Export.Clipboard, logging.For(logger, logging.CategoryExport))
	if !clip.Enabled() {
		return errors.New("clipboard is disabled or unsupported here - use 'rumo show --raw' or 'rumo export' instead")
	}
	if err := clip.Copy(persona.Render(rec.Profile)); err != nil {
		return err
	}
	fmt.Println("COPIED! Paste it as the system prompt (or first message) of your assistant.")
	return nil
}

func isMarkdown(format string) bool {
	e, err := export.Lookup(format)
	return err == nil && e.Name() == "md"
}

func without(list []string, drop string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !strings.EqualFold(v, drop) {
			out = append(out, v)
		}
	}
	return out
}
