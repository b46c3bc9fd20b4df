package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <trace>",
		Short: "Show allocator statistics for a trace",
		Long: `The stats command replays a trace and prints the heap's operation
counters: allocations, frees, growth, splits, and coalescing activity.

Example:
  heapctl stats workload.trace
  heapctl stats workload.trace --strategy implicit --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
}

func runStats(args []string) error {
	res, err := replayTrace(args[0])
	if err != nil {
		return err
	}

	s := res.h.Stats()
	if jsonOut {
		enc, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(enc))
		return nil
	}

	printInfo("Strategy:        %s\n", strategy)
	printInfo("Alloc calls:     %d\n", s.AllocCalls)
	printInfo("Free calls:      %d\n", s.FreeCalls)
	printInfo("Realloc calls:   %d\n", s.ReallocCalls)
	printInfo("Calloc calls:    %d\n", s.CallocCalls)
	printInfo("Grow calls:      %d (%d bytes)\n", s.GrowCalls, s.GrowBytes)
	printInfo("Reuse hits:      %d\n", s.ReuseHits)
	printInfo("Splits:          %d\n", s.Splits)
	if strategy == "implicit" {
		printInfo("Sweeps:          %d\n", s.Sweeps)
	} else {
		printInfo("Coalesce left:   %d\n", s.CoalesceLeft)
		printInfo("Coalesce right:  %d\n", s.CoalesceRight)
	}
	return nil
}
