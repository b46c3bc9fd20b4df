package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var dumpFreeOnly bool

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpFreeOnly, "free-only", false, "Show only free blocks")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <trace>",
		Short: "Print the block map after replaying a trace",
		Long: `The dump command replays a trace and prints every block in the heap
in address order, with its payload offset, size, and state.

Example:
  heapctl dump workload.trace
  heapctl dump workload.trace --free-only
  heapctl dump workload.trace --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

func runDump(args []string) error {
	res, err := replayTrace(args[0])
	if err != nil {
		return err
	}

	blocks := res.h.Blocks()
	if jsonOut {
		enc, err := json.MarshalIndent(blocks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(enc))
		return nil
	}

	printInfo("%-12s %-10s %s\n", "OFFSET", "SIZE", "STATE")
	for _, b := range blocks {
		if dumpFreeOnly && b.Allocated {
			continue
		}
		state := "free"
		if b.Allocated {
			state = "allocated"
		}
		printInfo("0x%08X   %-10d %s\n", int(b.Off), b.Size, state)
	}
	return nil
}
