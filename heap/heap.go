package heap

// Ptr is a payload address: the arena offset of the first usable byte
// of an allocated block.
type Ptr int

// NilPtr is the null payload address. No payload can sit at offset
// zero; the region's metadata prefix occupies it.
const NilPtr Ptr = 0

// Heap is the public operation surface shared by both allocation
// strategies.
type Heap interface {
	// Alloc allocates at least n bytes of payload. It returns the
	// payload address and a slice over the payload, which may be larger
	// than n. The slice is valid until the heap next grows.
	Alloc(n int) (Ptr, []byte, error)

	// Free releases the block at p for reuse. Free(NilPtr) is a no-op.
	Free(p Ptr) error

	// Realloc resizes the block at p to at least n bytes. The first
	// min(old, new) payload bytes are preserved; the old block is
	// freed. Realloc(NilPtr, n) behaves as Alloc(n); Realloc(p, 0)
	// behaves as Free(p) and returns NilPtr.
	Realloc(p Ptr, n int) (Ptr, []byte, error)

	// Calloc allocates count*n bytes and zero-fills the entire payload.
	// Overflow of count*n is not checked.
	Calloc(count, n int) (Ptr, []byte, error)

	// Payload re-derives the current payload slice for p, or nil for
	// NilPtr.
	Payload(p Ptr) []byte

	// Blocks reports every block currently in the region, in address
	// order.
	Blocks() []BlockInfo

	// Stats returns operation counters.
	Stats() Stats

	// Check walks the region and verifies its structural invariants.
	Check() error
}

// BlockInfo describes one block for inspection and testing.
type BlockInfo struct {
	// Off is the block's payload offset in the arena.
	Off Ptr
	// Size is the payload size in bytes.
	Size int
	// Allocated reports whether the block is currently live.
	Allocated bool
}
