package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local database",
	Long: `Remove the SQLite database holding session history, LLM events,
and benchmark snapshots. This cannot be undone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		if !force {
			return fmt.Errorf("refusing to delete %s without --force", dbPath)
		}

		if err := os.Remove(dbPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Println("Nothing to reset:", dbPath, "does not exist.")
				return nil
			}
			return fmt.Errorf("remove database: %w", err)
		}

		// SQLite leaves WAL sidecars next to the main file.
		for _, suffix := range []string{"-wal", "-shm"} {
			_ = os.Remove(dbPath + suffix)
		}

		fmt.Println("Removed", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Actually delete the database")
}
