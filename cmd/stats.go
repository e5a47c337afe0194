package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hintz/internal/analysis"
	"github.com/abhisek/hintz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show tutoring session statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			stats, err := s.EventRepo().TutoringStats(ctx)
			if err != nil {
				return fmt.Errorf("query stats: %w", err)
			}

			if stats.Sessions == 0 {
				fmt.Println("No tutoring sessions recorded yet.")
			} else {
				printSessionStats(stats)
			}

			snap, err := s.SnapshotRepo().Latest(ctx)
			if err != nil {
				return fmt.Errorf("query snapshot: %w", err)
			}
			if snap != nil && snap.Data.LastBench != nil {
				fmt.Println()
				printLastBench(snap.Data.LastBench)
			}
			return nil
		})
	},
}

func printSessionStats(stats *store.SessionStats) {
	sep := strings.Repeat("─", 56)

	fmt.Println("Tutoring Sessions")
	fmt.Println(sep)
	fmt.Printf("Sessions:       %d\n", stats.Sessions)
	fmt.Printf("Accepted:       %d (%.0f%%)\n",
		stats.Accepted, 100*float64(stats.Accepted)/float64(stats.Sessions))
	fmt.Printf("Mean score:     %.2f\n", stats.MeanScore)
	fmt.Printf("Mean attempts:  %.1f\n", stats.MeanAttempts)

	if len(stats.ByComplexity) > 0 {
		fmt.Println()
		fmt.Println("By Complexity")
		fmt.Println(sep)
		for _, c := range complexityOrder(stats.ByComplexity) {
			fmt.Printf("%-16s  %6d\n", c, stats.ByComplexity[c])
		}
	}

	if len(stats.ByStrategy) > 0 {
		names := make([]string, 0, len(stats.ByStrategy))
		for name := range stats.ByStrategy {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println()
		fmt.Println("By Strategy")
		fmt.Println(sep)
		fmt.Printf("%-16s  %8s  %6s\n", "Strategy", "Attempts", "Mean")
		for _, name := range names {
			st := stats.ByStrategy[name]
			fmt.Printf("%-16s  %8d  %6.2f\n", name, st.Attempts, st.MeanScore)
		}
	}
}

// complexityOrder sorts complexity keys simple to complex, with anything
// unrecognized appended alphabetically.
func complexityOrder(counts map[string]int) []string {
	known := []string{string(analysis.Simple), string(analysis.Moderate), string(analysis.Complex)}
	var out []string
	seen := make(map[string]bool)
	for _, c := range known {
		if _, ok := counts[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}
	var rest []string
	for c := range counts {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func printLastBench(b *store.BenchReportData) {
	sep := strings.Repeat("─", 56)

	fmt.Println("Last Benchmark")
	fmt.Println(sep)
	fmt.Printf("Run:       %s\n", b.RunID)
	fmt.Printf("Split:     %s (%d records)\n", b.Split, b.Records)
	fmt.Printf("Finished:  %s\n", b.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	for _, a := range b.Approaches {
		detail := fmt.Sprintf("%d scored, %d accepted", a.Count, a.Accepted)
		if a.MeanAttempts > 0 {
			detail += fmt.Sprintf(", %.1f tries", a.MeanAttempts)
		}
		fmt.Printf("  %-18s %.2f  (%s)\n", a.Approach, a.MeanScore, detail)
	}
}
