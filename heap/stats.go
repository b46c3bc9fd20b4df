package heap

// Stats holds operation counters for instrumentation and testing.
type Stats struct {
	AllocCalls   int   // Total Alloc calls
	FreeCalls    int   // Total Free calls (excluding NilPtr no-ops)
	ReallocCalls int   // Total Realloc calls
	CallocCalls  int   // Total Calloc calls
	GrowCalls    int   // Arena extensions
	GrowBytes    int64 // Total bytes requested from the arena
	ReuseHits    int   // Allocations satisfied from free blocks
	Splits       int   // Free blocks split during placement

	CoalesceLeft  int // Leftward merges (Explicit)
	CoalesceRight int // Rightward merges (Explicit)
	Sweeps        int // Full coalescing sweeps (Implicit)
}
