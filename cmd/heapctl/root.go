package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/heap"
)

var (
	// Global flags
	strategy string
	limit    int
	verbose  bool
	quiet    bool
	jsonOut  bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Replay and inspect heap allocation traces",
	Long: `heapctl replays allocation traces against a heapkit heap and
inspects the result: block maps, operation statistics, and structural
invariant checks. Traces are plain text, one operation per line:

  alloc <name> <bytes>
  calloc <name> <count> <bytes>
  realloc <name> <bytes>
  free <name>
  fill <name> <byte>

Lines starting with # are comments.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&strategy, "strategy", "explicit", "Allocation strategy: explicit or implicit")
	rootCmd.PersistentFlags().
		IntVar(&limit, "limit", 0, "Arena size limit in bytes (0 = unlimited)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newHeap builds a heap for the selected strategy.
func newHeap() (heap.Heap, error) {
	a := arena.NewSlice(limit)
	switch strategy {
	case "explicit":
		return heap.New(a)
	case "implicit":
		return heap.NewImplicit(a)
	default:
		return nil, fmt.Errorf("unknown strategy %q (want explicit or implicit)", strategy)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
