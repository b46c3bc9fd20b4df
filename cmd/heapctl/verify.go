package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <trace>",
		Short: "Replay a trace and check heap invariants",
		Long: `The verify command replays a trace and then walks the heap checking
its structural invariants: boundary tag agreement, block sizes, free
list linkage, and coalescing maximality.

Example:
  heapctl verify workload.trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := replayTrace(args[0])
			if err != nil {
				return err
			}
			if err := res.h.Check(); err != nil {
				return err
			}
			printInfo("OK: %d operations, invariants hold\n", res.ops)
			return nil
		},
	}
}
