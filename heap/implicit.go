package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// Implicit is the alternate strategy: header-only tags, no free list,
// and deferred coalescing. Freeing only clears the allocation flag;
// every allocation first sweeps the whole heap merging adjacent free
// runs, then scans blocks in address order for the first fit. The
// coalescing-maximality invariant is therefore restored at the next
// Alloc rather than at Free return.
//
// In this layout a block is a single header word followed by the
// payload, and the stored size covers the whole block including the
// header.
type Implicit struct {
	arena arena.Arena

	// first and last bound the block run; -1 while the heap holds no
	// blocks at all.
	first int
	last  int

	stats Stats
}

var _ Heap = (*Implicit)(nil)

// NewImplicit initializes an implicit-list heap over a. A padding
// prefix aligns the first payload to the alignment boundary.
func NewImplicit(a arena.Arena) (*Implicit, error) {
	if _, err := a.Extend(format.Alignment - format.WordSize); err != nil {
		return nil, fmt.Errorf("%w: padding: %w", ErrInitFailed, err)
	}
	return &Implicit{arena: a, first: -1, last: -1}, nil
}

// Alloc allocates at least n bytes of payload.
func (h *Implicit) Alloc(n int) (Ptr, []byte, error) {
	if n < 0 {
		return NilPtr, nil, ErrBadSize
	}
	h.stats.AllocCalls++
	h.sweep()

	// Block size covers the header word and is alignment-rounded.
	size := format.AlignUp(n + format.WordSize)

	if off, ok := h.findFit(size); ok {
		h.stats.ReuseHits++
		return h.payloadAt(off)
	}

	start, err := h.arena.Extend(size)
	if err != nil {
		return NilPtr, nil, fmt.Errorf("%w: %w", ErrNoSpace, err)
	}
	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(size)

	data := h.arena.Bytes()
	if h.first < 0 {
		h.first = start
	}
	h.last = start
	format.PutTag(data, start, size, true)
	return h.payloadAt(start)
}

// Free clears the allocation flag. Merging with neighbors is deferred
// to the sweep at the start of the next Alloc.
func (h *Implicit) Free(p Ptr) error {
	if p == NilPtr {
		return nil
	}
	data := h.arena.Bytes()
	off := int(p) - format.WordSize
	if off < h.first || h.first < 0 || int(p) > len(data) {
		return ErrBadRef
	}
	h.stats.FreeCalls++
	format.PutTag(data, off, format.TagSize(data, off), false)
	return nil
}

// Realloc resizes by allocating fresh, copying min(old, new) payload
// bytes, and freeing the old block.
func (h *Implicit) Realloc(p Ptr, n int) (Ptr, []byte, error) {
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

	oldSize := format.TagSize(h.arena.Bytes(), int(p)-format.WordSize) - format.WordSize

	newP, payload, err := h.Alloc(n)
	if err != nil {
		return NilPtr, nil, err
	}

	data := h.arena.Bytes()
	keep := min(oldSize, len(payload))
	copy(payload[:keep], data[int(p):int(p)+keep])

	if err := h.Free(p); err != nil {
		return NilPtr, nil, err
	}
	return newP, payload, nil
}

// Calloc allocates count*n bytes and zero-fills the entire payload.
func (h *Implicit) Calloc(count, n int) (Ptr, []byte, error) {
	h.stats.CallocCalls++
	p, payload, err := h.Alloc(count * n)
	if err != nil {
		return NilPtr, nil, err
	}
	clear(payload)
	return p, payload, nil
}

// Payload returns the current payload slice for p, or nil for NilPtr.
func (h *Implicit) Payload(p Ptr) []byte {
	if p == NilPtr {
		return nil
	}
	data := h.arena.Bytes()
	size := format.TagSize(data, int(p)-format.WordSize) - format.WordSize
	return data[int(p) : int(p)+size : int(p)+size]
}

// Blocks reports every block in the region in address order.
func (h *Implicit) Blocks() []BlockInfo {
	if h.first < 0 {
		return nil
	}
	data := h.arena.Bytes()
	var out []BlockInfo
	for off := h.first; off < len(data); off += format.TagSize(data, off) {
		size := format.TagSize(data, off)
		out = append(out, BlockInfo{
			Off:       Ptr(off + format.WordSize),
			Size:      size - format.WordSize,
			Allocated: format.TagAllocated(data, off),
		})
	}
	return out
}

// Stats returns operation counters.
func (h *Implicit) Stats() Stats {
	return h.stats
}

// Check walks the block run and verifies sizes and bounds.
func (h *Implicit) Check() error {
	if h.first < 0 {
		return nil
	}
	data := h.arena.Bytes()
	off := h.first
	for off < len(data) {
		size := format.TagSize(data, off)
		if size < format.Alignment || size%format.Alignment != 0 {
			return fmt.Errorf("heap: check: block at %d has illegal size %d", off, size)
		}
		if off+size > len(data) {
			return fmt.Errorf("heap: check: block at %d overruns the region", off)
		}
		off += size
	}
	if off != len(data) {
		return fmt.Errorf("heap: check: block run ends at %d, region at %d", off, len(data))
	}
	return nil
}

// sweep merges every run of adjacent free blocks into one, restoring
// coalescing maximality before placement runs.
func (h *Implicit) sweep() {
	if h.first < 0 {
		return
	}
	h.stats.Sweeps++
	data := h.arena.Bytes()
	for off := h.first; off < len(data); off += format.TagSize(data, off) {
		if format.TagAllocated(data, off) {
			continue
		}
		total := format.TagSize(data, off)
		next := off + total
		for next < len(data) && !format.TagAllocated(data, next) {
			total += format.TagSize(data, next)
			next = off + total
		}
		if total != format.TagSize(data, off) {
			format.PutTag(data, off, total, false)
			if next >= len(data) {
				// The run absorbed the trailing block.
				h.last = off
			}
		}
	}
}

// findFit scans blocks in address order for the first free block of at
// least size bytes, splitting when the remainder can hold a header.
func (h *Implicit) findFit(size int) (int, bool) {
	if h.first < 0 {
		return 0, false
	}
	data := h.arena.Bytes()
	for off := h.first; off <= h.last; off += format.TagSize(data, off) {
		blockSize := format.TagSize(data, off)
		if format.TagAllocated(data, off) || blockSize < size {
			continue
		}
		if blockSize-size < format.Alignment {
			// Remainder too small to carry a header; hand out the
			// whole block.
			format.PutTag(data, off, blockSize, true)
			return off, true
		}
		h.stats.Splits++
		format.PutTag(data, off, size, true)
		format.PutTag(data, off+size, blockSize-size, false)
		if off == h.last {
			h.last = off + size
		}
		return off, true
	}
	return 0, false
}

// payloadAt returns the payload address and slice for the allocated
// block at off.
func (h *Implicit) payloadAt(off int) (Ptr, []byte, error) {
	data := h.arena.Bytes()
	size := format.TagSize(data, off) - format.WordSize
	p := off + format.WordSize
	return Ptr(p), data[p : p+size : p+size], nil
}
