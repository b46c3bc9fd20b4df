package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace>",
		Short: "Replay an allocation trace",
		Long: `The run command replays every operation in a trace file against a
fresh heap and reports the outcome.

Example:
  heapctl run workload.trace
  heapctl run workload.trace --strategy implicit -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := replayTrace(args[0])
			if err != nil {
				return err
			}
			blocks := res.h.Blocks()
			freeBlocks := 0
			for _, b := range blocks {
				if !b.Allocated {
					freeBlocks++
				}
			}
			printInfo("%d operations applied: %d named blocks live, %d blocks on heap (%d free)\n",
				res.ops, len(res.live), len(blocks), freeBlocks)
			return nil
		},
	}
}
