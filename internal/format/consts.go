package format

// Layout constants for the block format.
//
// Every size stored in a boundary tag is a payload size in bytes, a
// multiple of Alignment, with the allocation state packed into the low
// bit (sizes are always multiples of 16, so the bit is otherwise unused).

const (
	// WordSize is the size of one metadata word (a boundary tag).
	WordSize = 8

	// Alignment is the required alignment of heap payloads, twice the
	// word size.
	Alignment = 2 * WordSize

	// AlignmentMask masks off the sub-alignment bits of an offset.
	AlignmentMask = Alignment - 1

	// Overhead is the per-block metadata cost: the predecessor's footer
	// word followed by the block's own header word.
	Overhead = 2 * WordSize

	// MinPayload is the smallest payload a block may carry. A free
	// block embeds its prev/next list links in its first two payload
	// words, so no block may ever be smaller than this.
	MinPayload = 2 * WordSize

	// MinBlockSize is the total span of the smallest legal block.
	MinBlockSize = Overhead + MinPayload

	// allocatedBit marks a tag's block as allocated.
	allocatedBit = 1
)
