package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rumo/internal/config"
	"rumo/internal/interview"
	"rumo/internal/logging"
	"rumo/internal/persona"
	"rumo/internal/store"
)

var (
	resetYes    bool
	configForce bool
)

// statusCmd summarizes the saved profile.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where your interview stands",
	RunE:  runStatus,
}

// resetCmd deletes the saved profile.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete your saved answers and start over",
	RunE:  runReset,
}

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

// historian is implemented by backends that keep past revisions.
type historian interface {
	History(ctx context.Context, limit int) ([]store.Record, error)
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Confirm deletion")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	schema := persona.Schema()
	fmt.Printf("Store:    %s\n", st.Describe())

	rec, err := st.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Println("Status:   not started")
		fmt.Println("Run 'rumo' to begin the interview.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	profile, _ := rec.Profile.Sanitize(schema)

	if rec.Completed {
		fmt.Println("Status:   completed")
	} else {
		fmt.Println("Status:   in progress")
	}
	fmt.Printf("Answered: %d of %d\n", len(profile), schema.TotalSteps())
	if !rec.Completed {
		if q, ok := nextQuestion(schema, profile); ok {
			fmt.Printf("Next:     %s\n", q.Title)
		}
	}
	fmt.Printf("Revision: %s\n", rec.Revision)
	fmt.Printf("Updated:  %s\n", rec.UpdatedAt.Local().Format(time.RFC1123))

	if h, ok := st.(historian); ok {
		past, err := h.History(ctx, 0)
		if err != nil {
			logging.Store("history unavailable: %v", err)
		} else {
			fmt.Printf("History:  %d recent revisions\n", len(past))
		}
	}
	return nil
}

// nextQuestion returns the first question, in interview order, without an
// answer.
func nextQuestion(schema *interview.Schema, p interview.Profile) (interview.Question, bool) {
	for _, key := range schema.Keys() {
		if _, ok := p[key]; !ok {
			return schema.Lookup(key)
		}
	}
	return interview.Question{}, false
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return errors.New("this deletes your saved answers; re-run with --yes to confirm")
	}
	ctx := commandContext(cmd)
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	logging.Store("profile cleared: %s", st.Describe())
	fmt.Println("Saved answers deleted. Run 'rumo' to start again.")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}
