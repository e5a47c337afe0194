package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/hintz/internal/app"
	"github.com/abhisek/hintz/internal/bench"
	"github.com/abhisek/hintz/internal/dataset"
	benchscreen "github.com/abhisek/hintz/internal/screens/bench"
	"github.com/abhisek/hintz/internal/store"
)

// keepSnapshots bounds how many benchmark snapshots stay in the store.
const keepSnapshots = 10

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Score hint approaches over a dataset split",
	Long: `Evaluate hint quality across approaches (human hints, direct model
hints, full tutoring sessions) on the failing attempts of a dataset
split, then print the per-approach score table.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().String("data", "", "Dataset root directory (required)")
	benchCmd.Flags().String("split", "test", "Dataset split: train, val, or test")
	benchCmd.Flags().String("approaches", "all", "Comma-separated approaches, or \"all\" for every available one")
	benchCmd.Flags().Int("workers", 0, "Concurrent record evaluations (default 4)")
	benchCmd.Flags().Int("limit", 0, "Evaluate at most N records (0 = all)")
	benchCmd.Flags().String("out", "", "Write per-record results as JSONL to this path")
	benchCmd.Flags().Bool("plain", false, "Line-based progress instead of the live view")
	benchCmd.Flags().Int("threshold", 0, "Judge score that counts as accepted, 1-5 (default 4)")
	_ = benchCmd.MarkFlagRequired("data")
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dataRoot, _ := cmd.Flags().GetString("data")
	split, _ := cmd.Flags().GetString("split")
	approachesFlag, _ := cmd.Flags().GetString("approaches")
	workers, _ := cmd.Flags().GetInt("workers")
	limit, _ := cmd.Flags().GetInt("limit")
	outPath, _ := cmd.Flags().GetString("out")
	plain, _ := cmd.Flags().GetBool("plain")
	threshold, _ := cmd.Flags().GetInt("threshold")

	if !dataset.ValidSplit(split) {
		return fmt.Errorf("unknown split %q (expected one of %s)", split, strings.Join(dataset.Splits, ", "))
	}

	// "all" lets the runner pick every approach the configuration can
	// actually serve; an explicit list errors when one is unavailable.
	var approaches []bench.Approach
	if approachesFlag != "" && approachesFlag != "all" {
		var err error
		approaches, err = bench.ParseApproaches(approachesFlag)
		if err != nil {
			return err
		}
	}

	records, err := dataset.NewLoader(dataRoot).Records(split)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no %s split under %s (expected %s/processed/failed_tests/%s): %w",
				split, dataRoot, dataRoot, split, err)
		}
		return fmt.Errorf("load dataset: %w", err)
	}
	if len(records) == 0 {
		fmt.Printf("No failing attempts in the %s split; nothing to benchmark.\n", split)
		return nil
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	a, err := app.FromEnv(ctx, st, threshold)
	if err != nil {
		return err
	}

	cfg := bench.Config{
		Approaches:      approaches,
		Workers:         workers,
		Limit:           limit,
		AcceptThreshold: threshold,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !plain {
		fi, statErr := os.Stdout.Stat()
		plain = statErr != nil || fi.Mode()&os.ModeCharDevice == 0
	}

	var rep *bench.Report
	if plain {
		rep, err = runBenchPlain(runCtx, a, cfg, split, records)
	} else {
		rep, err = runBenchLive(runCtx, cancel, a, cfg, split, records)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Benchmark cancelled; no report written.")
			return nil
		}
		return err
	}

	fmt.Print(rep.Render())

	if outPath != "" {
		if err := writeJSONLFile(rep, outPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rep.Rows), outPath)
	}

	if err := saveBenchSnapshot(ctx, a.SnapshotRepo, rep); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not record benchmark snapshot:", err)
	}
	return nil
}

// runBenchLive drives the run under the progress view. The runner feeds
// rows into the program; the program owns the terminal until DoneMsg.
func runBenchLive(ctx context.Context, cancel context.CancelFunc, a *app.App, cfg bench.Config, split string, records []dataset.Record) (*bench.Report, error) {
	// OnRow is fixed at runner construction, but only fires once Run
	// starts in the goroutine below, after p is assigned.
	var p *tea.Program
	cfg.OnRow = func(row bench.Row) {
		p.Send(benchscreen.RowMsg{Row: row})
	}

	r, err := a.BenchRunner(cfg)
	if err != nil {
		return nil, err
	}

	screen := benchscreen.New(split, shownTotal(cfg, records), r.Approaches(), cancel)
	p = tea.NewProgram(screen)

	go func() {
		rep, runErr := r.Run(ctx, split, records)
		p.Send(benchscreen.DoneMsg{Report: rep, Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		return nil, fmt.Errorf("benchmark view: %w", err)
	}
	return screen.Report()
}

func runBenchPlain(ctx context.Context, a *app.App, cfg bench.Config, split string, records []dataset.Record) (*bench.Report, error) {
	total := shownTotal(cfg, records)
	var done atomic.Int64
	cfg.OnRow = func(row bench.Row) {
		fmt.Fprintf(os.Stderr, "[%d/%d] %s/%d/%d\n", done.Add(1), total, row.Split, row.ProblemID, row.AttemptID)
	}

	r, err := a.BenchRunner(cfg)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, split, records)
}

// shownTotal is the record count a run will actually evaluate, for
// progress display.
func shownTotal(cfg bench.Config, records []dataset.Record) int {
	total := len(records)
	if cfg.Limit > 0 && cfg.Limit < total {
		total = cfg.Limit
	}
	return total
}

func writeJSONLFile(rep *bench.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := rep.WriteJSONL(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func saveBenchSnapshot(ctx context.Context, repo store.SnapshotRepo, rep *bench.Report) error {
	if repo == nil {
		return nil
	}
	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version:   1,
			LastBench: rep.StoreData(),
		},
	}
	if err := repo.Save(ctx, snap); err != nil {
		return err
	}
	return repo.Prune(ctx, keepSnapshots)
}
