package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/hintz/internal/app"
	"github.com/abhisek/hintz/internal/store"
	"github.com/abhisek/hintz/internal/tutor"
	"github.com/abhisek/hintz/internal/ui/layout"
	"github.com/abhisek/hintz/internal/ui/theme"
	"github.com/spf13/cobra"
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Generate a scored hint for a failing attempt",
	Long: `Run one tutoring session: classify the failure, pick a strategy,
generate a hint, score it with the judge, and escalate through strategies
until a hint is good enough or all of them have been tried.

Inputs are files; pass "-" for at most one of them to read stdin.`,
	RunE: runHint,
}

func init() {
	hintCmd.Flags().String("problem", "", "Path to the problem statement (required)")
	hintCmd.Flags().String("code", "", "Path to the learner's attempt (required)")
	hintCmd.Flags().String("failure", "", "Path to the failing test output (required)")
	hintCmd.Flags().String("id", "", "Problem identifier recorded with the session (default: code file name)")
	hintCmd.Flags().Int("threshold", 0, "Judge score that accepts a hint, 1-5 (default 4)")
	hintCmd.Flags().Bool("fine-tuned", false, "Generate with the fine-tuned model")
	hintCmd.Flags().Bool("json", false, "Print the full session result as JSON")
	hintCmd.Flags().Bool("no-store", false, "Skip event persistence")
	_ = hintCmd.MarkFlagRequired("problem")
	_ = hintCmd.MarkFlagRequired("code")
	_ = hintCmd.MarkFlagRequired("failure")
}

func runHint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	problemPath, _ := cmd.Flags().GetString("problem")
	codePath, _ := cmd.Flags().GetString("code")
	failurePath, _ := cmd.Flags().GetString("failure")
	problemID, _ := cmd.Flags().GetString("id")
	threshold, _ := cmd.Flags().GetInt("threshold")
	useFineTuned, _ := cmd.Flags().GetBool("fine-tuned")
	asJSON, _ := cmd.Flags().GetBool("json")
	noStore, _ := cmd.Flags().GetBool("no-store")

	stdinUses := 0
	for _, p := range []string{problemPath, codePath, failurePath} {
		if p == "-" {
			stdinUses++
		}
	}
	if stdinUses > 1 {
		return fmt.Errorf("only one input may read stdin")
	}

	problem, err := readInput(problemPath)
	if err != nil {
		return fmt.Errorf("read problem: %w", err)
	}
	code, err := readInput(codePath)
	if err != nil {
		return fmt.Errorf("read code: %w", err)
	}
	failure, err := readInput(failurePath)
	if err != nil {
		return fmt.Errorf("read failure: %w", err)
	}

	if problemID == "" {
		problemID = strings.TrimSuffix(filepath.Base(codePath), filepath.Ext(codePath))
	}

	var st *store.Store
	if !noStore {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err = store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
	}

	a, err := app.FromEnv(ctx, st, threshold)
	if err != nil {
		return err
	}

	controller := a.Controller
	if useFineTuned {
		if a.FineTunedController == nil {
			return fmt.Errorf("--fine-tuned requires HINTZ_FINETUNED_MODEL and HINTZ_FINETUNED_BASE_URL")
		}
		controller = a.FineTunedController
	}

	res, err := controller.Run(ctx, tutor.TutoringRequest{
		ProblemID:   problemID,
		Problem:     problem,
		LearnerCode: code,
		TestFailure: failure,
	})
	if err != nil {
		if errors.Is(err, tutor.ErrNoAttempts) {
			return fmt.Errorf("hint generation failed on every strategy: %w", err)
		}
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Println(renderResult(res))
	return nil
}

// readInput reads a file's contents, with "-" meaning stdin.
func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func renderResult(res *tutor.TutoringResult) string {
	width := layout.DefaultWidth
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Card.Width(width - 4).Render(theme.Body.Render(res.FinalHint)))
	b.WriteString("\n\n")

	verdict := theme.Exhausted.Render("best effort")
	if res.Accepted {
		verdict = theme.Accepted.Render("accepted")
	}
	score := theme.ScoreStyle(res.FinalScore).Render(fmt.Sprintf("%d/5", res.FinalScore))

	b.WriteString("  " + layout.KeyValue("score", score+"  "+verdict, 10) + "\n")
	b.WriteString("  " + layout.KeyValue("strategy", theme.Strategy.Render(string(res.StrategyUsed)), 10) + "\n")
	b.WriteString("  " + layout.KeyValue("complexity", string(res.Complexity), 10) + "\n")
	if res.FinalReason != "" {
		b.WriteString("  " + layout.KeyValue("judge", theme.Dim.Render(res.FinalReason), 10) + "\n")
	}

	if len(res.Attempts) > 1 {
		b.WriteString("\n")
		b.WriteString("  " + theme.Subtitle.Render("attempts") + "\n")
		for _, att := range res.Attempts {
			b.WriteString(fmt.Sprintf("    %d. %-14s %s\n",
				att.AttemptIndex+1,
				att.Strategy,
				theme.ScoreStyle(att.Score).Render(fmt.Sprintf("%d/5", att.Score)),
			))
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + theme.Dim.Render(fmt.Sprintf("session %s, %s", res.SessionID, res.Duration.Round(10*time.Millisecond))))
	return b.String()
}
