package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/hintz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hintz",
	Short: "Adaptive tutoring hints for failing code",
	Long: "Hintz is a terminal tutor that turns a failing programming attempt into\n" +
		"a scored teaching hint. It analyzes the failure, picks a tutoring\n" +
		"strategy, generates a hint, judges it, and escalates until it teaches.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HINTZ_DB env var)")

	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath picks the database path: the --db flag wins, then the
// HINTZ_DB env var, then the XDG default.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// withStore opens the event store for cmd and hands it to fn, closing
// it on the way out.
func withStore(cmd *cobra.Command, fn func(context.Context, *store.Store) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(cmd.Context(), s)
}
