package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
	"github.com/Aditi-N-28/ArthaMind/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect AI backend usage",
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate request counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		st, err := docstore.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		stats, err := llm.NewStoreUsageLog(st).Stats(context.Background())
		if err != nil {
			return err
		}

		if stats.Calls == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("Calls:          %d\n", stats.Calls)
		fmt.Printf("Failures:       %d\n", stats.Failures)
		fmt.Printf("Input tokens:   %d\n", stats.InputTokens)
		fmt.Printf("Output tokens:  %d\n", stats.OutputTokens)
		if stats.Calls > 0 {
			fmt.Printf("Avg latency:    %d ms\n", stats.LatencyMs/stats.Calls)
		}

		if len(stats.ByPurpose) > 0 {
			fmt.Println("\nBy purpose:")
			purposes := make([]string, 0, len(stats.ByPurpose))
			for p := range stats.ByPurpose {
				purposes = append(purposes, p)
			}
			sort.Strings(purposes)

			fmt.Printf("  %-16s  %-8s  %s\n", "Purpose", "Calls", "Out tokens")
			fmt.Println("  " + strings.Repeat("─", 40))
			for _, p := range purposes {
				c := stats.ByPurpose[p]
				fmt.Printf("  %-16s  %-8d  %d\n", p, c.Calls, c.OutputTokens)
			}
		}

		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmStatsCmd)
}
