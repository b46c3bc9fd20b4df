package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// Explicit is the production heap: boundary-tagged blocks, an explicit
// LIFO free list, first-fit placement biased toward recently freed
// memory, and immediate coalescing on free.
type Explicit struct {
	arena arena.Arena
	list  freeList

	// base is the offset of the first possible block, right after the
	// anchor nodes. The prologue footer sits at base and the first
	// block's header overlays the word after it.
	base int

	stats Stats
}

var _ Heap = (*Explicit)(nil)

// New initializes an explicit-list heap over a. It reserves the two
// free-list anchor nodes and writes the prologue and epilogue boundary
// tags. If the arena fails during this prefix, the returned error wraps
// ErrInitFailed and the heap must not be used.
func New(a arena.Arena) (*Explicit, error) {
	h := &Explicit{arena: a}

	headOff, err := a.Extend(format.Alignment)
	if err != nil {
		return nil, fmt.Errorf("%w: head anchor: %w", ErrInitFailed, err)
	}
	tailOff, err := a.Extend(format.Alignment)
	if err != nil {
		return nil, fmt.Errorf("%w: tail anchor: %w", ErrInitFailed, err)
	}
	prologue, err := a.Extend(format.WordSize)
	if err != nil {
		return nil, fmt.Errorf("%w: prologue: %w", ErrInitFailed, err)
	}
	epilogue, err := a.Extend(format.WordSize)
	if err != nil {
		return nil, fmt.Errorf("%w: epilogue: %w", ErrInitFailed, err)
	}

	data := a.Bytes()
	h.list = freeList{head: headOff, tail: tailOff}
	h.list.init(data)
	// Zero-size allocated tags: coalescing can probe past either end of
	// the block run without ever merging into the region edges.
	format.WriteBoundary(data, prologue)
	format.WriteBoundary(data, epilogue)
	h.base = prologue
	return h, nil
}

// Alloc allocates at least n bytes of payload.
func (h *Explicit) Alloc(n int) (Ptr, []byte, error) {
	if n < 0 {
		return NilPtr, nil, ErrBadSize
	}
	h.stats.AllocCalls++

	size := format.AlignUp(n)
	if size < format.MinPayload {
		// Every block must be able to host the free-list links once it
		// is freed.
		size = format.MinPayload
	}

	if off, ok := h.findFit(size); ok {
		h.stats.ReuseHits++
		return h.payloadAt(off)
	}

	off, err := h.grow(size)
	if err != nil {
		return NilPtr, nil, err
	}
	return h.payloadAt(off)
}

// Free releases the block whose payload starts at p, coalescing with
// free neighbors immediately. Free(NilPtr) is a no-op.
func (h *Explicit) Free(p Ptr) error {
	if p == NilPtr {
		return nil
	}
	data := h.arena.Bytes()
	if int(p) < format.PayloadOff(h.base) || int(p) > len(data) {
		return ErrBadRef
	}
	h.stats.FreeCalls++

	off := format.BlockOff(int(p))
	size := format.BlockSize(data, off)
	format.WriteTags(data, off, size, false)
	h.list.link(data, nodeFromBlock(off))

	if !format.PrevAllocated(data, off) || !format.NextAllocated(data, off) {
		h.coalesce(data, off, size)
	}
	return nil
}

// Realloc resizes the block at p by allocating fresh, copying
// min(old, new) payload bytes, and freeing the old block. The block is
// never resized in place, even when shrinking.
func (h *Explicit) Realloc(p Ptr, n int) (Ptr, []byte, error) {
	h.stats.ReallocCalls++
	if p == NilPtr {
		return h.Alloc(n)
	}
	if n == 0 {
		if err := h.Free(p); err != nil {
			return NilPtr, nil, err
		}
		return NilPtr, nil, nil
	}

	oldSize := format.BlockSize(h.arena.Bytes(), format.BlockOff(int(p)))

	newP, payload, err := h.Alloc(n)
	if err != nil {
		// Old block untouched on failure.
		return NilPtr, nil, err
	}

	// Re-derive after Alloc: the arena may have grown.
	data := h.arena.Bytes()
	keep := min(oldSize, len(payload))
	copy(payload[:keep], data[int(p):int(p)+keep])

	if err := h.Free(p); err != nil {
		return NilPtr, nil, err
	}
	return newP, payload, nil
}

// Calloc allocates count*n bytes and zero-fills the entire payload.
func (h *Explicit) Calloc(count, n int) (Ptr, []byte, error) {
	h.stats.CallocCalls++
	p, payload, err := h.Alloc(count * n)
	if err != nil {
		return NilPtr, nil, err
	}
	// Reused blocks carry whatever the previous owner wrote.
	clear(payload)
	return p, payload, nil
}

// Payload returns the current payload slice for p, or nil for NilPtr.
func (h *Explicit) Payload(p Ptr) []byte {
	if p == NilPtr {
		return nil
	}
	data := h.arena.Bytes()
	size := format.BlockSize(data, format.BlockOff(int(p)))
	return data[int(p) : int(p)+size : int(p)+size]
}

// Blocks reports every block in the region in address order.
func (h *Explicit) Blocks() []BlockInfo {
	data := h.arena.Bytes()
	var out []BlockInfo
	for off := h.base; ; off = format.NextBlock(data, off) {
		size := format.BlockSize(data, off)
		if size == 0 {
			break // epilogue
		}
		out = append(out, BlockInfo{
			Off:       Ptr(format.PayloadOff(off)),
			Size:      size,
			Allocated: format.BlockAllocated(data, off),
		})
	}
	return out
}

// Stats returns operation counters.
func (h *Explicit) Stats() Stats {
	return h.stats
}

// findFit traverses the free list newest to oldest and claims the first
// block whose size is sufficient, splitting it when the remainder can
// stand alone as a legal block.
func (h *Explicit) findFit(size int) (int, bool) {
	data := h.arena.Bytes()
	for n := nodePrev(data, h.list.tail); n != h.list.head; n = nodePrev(data, n) {
		off := blockFromNode(n)
		blockSize := format.BlockSize(data, off)
		if blockSize < size {
			continue
		}
		if blockSize < size+2*format.Overhead {
			// The remainder would be smaller than the minimum block, so
			// the whole block is handed out as-is.
			format.WriteTags(data, off, blockSize, true)
			h.list.unlink(data, n)
			return off, true
		}
		h.split(data, off, blockSize, size)
		return off, true
	}
	return 0, false
}

// split carves the low size bytes of the free block at off into an
// allocated block and relinks the high remainder as a fresh free block.
func (h *Explicit) split(data []byte, off, blockSize, size int) {
	h.stats.Splits++
	format.WriteTags(data, off, size, true)
	rem := format.NextBlock(data, off)
	format.WriteTags(data, rem, blockSize-size-format.Overhead, false)
	// The original block's links are intact until here; tags never
	// overlap the link words while size >= MinPayload.
	h.list.unlink(data, nodeFromBlock(off))
	h.list.link(data, nodeFromBlock(rem))
}

// grow extends the region at the end by one block. The old epilogue
// word becomes the new block's header, and a fresh epilogue is written
// past its footer.
func (h *Explicit) grow(size int) (int, error) {
	start, err := h.arena.Extend(size + format.Overhead)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoSpace, err)
	}
	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(size + format.Overhead)

	data := h.arena.Bytes()
	off := start - format.Overhead
	format.WriteTags(data, off, size, true)
	format.WriteBoundary(data, format.NextBlock(data, off)+format.WordSize)
	return off, nil
}

// coalesce merges the freshly freed block at off with its free
// neighbors. A leftward merge keeps the predecessor's identity and list
// position; the absorbed block is unlinked.
func (h *Explicit) coalesce(data []byte, off, size int) {
	if !format.PrevAllocated(data, off) {
		h.stats.CoalesceLeft++
		size += format.PrevSize(data, off) + format.Overhead
		prev := format.PrevBlock(data, off)
		format.WriteTags(data, prev, size, false)
		h.list.unlink(data, nodeFromBlock(off))
		// The merged block's successor is located through off's own
		// header, which the merge left in place.
		if !format.NextAllocated(data, off) {
			h.stats.CoalesceRight++
			next := format.NextBlock(data, off)
			size += format.BlockSize(data, next) + format.Overhead
			format.WriteTags(data, prev, size, false)
			h.list.unlink(data, nodeFromBlock(next))
		}
		return
	}
	if !format.NextAllocated(data, off) {
		h.stats.CoalesceRight++
		next := format.NextBlock(data, off)
		size += format.BlockSize(data, next) + format.Overhead
		format.WriteTags(data, off, size, false)
		h.list.unlink(data, nodeFromBlock(next))
	}
}

// payloadAt returns the payload address and slice for the allocated
// block at off.
func (h *Explicit) payloadAt(off int) (Ptr, []byte, error) {
	data := h.arena.Bytes()
	size := format.BlockSize(data, off)
	p := format.PayloadOff(off)
	return Ptr(p), data[p : p+size : p+size], nil
}
