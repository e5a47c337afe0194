package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/hintz/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update hintz to the latest version",
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().Bool("check", false, "Report whether a newer release exists without installing it")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	checkOnly, _ := cmd.Flags().GetBool("check")

	checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	if checkOnly {
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			fmt.Println("Already running the latest version.")
			return nil
		}
		fmt.Printf("Update available: %s -> %s\n", res.CurrentVersion, res.LatestVersion)
		if res.ReleaseURL != "" {
			fmt.Println(res.ReleaseURL)
		}
		fmt.Println("Run 'hintz update' to install.")
		return nil
	}

	err := checker.Update(ctx, &selfupdate.UpdateInput{
		CurrentVersion: version,
	}, func(p selfupdate.UpdateProgress) {
		fmt.Println(p.Message)
	})

	if err == nil {
		return nil
	}

	if errors.Is(err, selfupdate.ErrDevBuild) {
		fmt.Println("Cannot update a development build. Install a release build first.")
		return nil
	}
	if errors.Is(err, selfupdate.ErrAlreadyLatest) {
		fmt.Println("Already running the latest version.")
		return nil
	}
	if os.IsPermission(err) {
		return fmt.Errorf("%w\n\nTry running: sudo hintz update", err)
	}

	return err
}
