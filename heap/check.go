package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Check walks the whole region and the free list and verifies every
// structural invariant: matching header/footer tags, legal sizes, no
// two adjacent free blocks, intact list linkage, and exact agreement
// between list membership and the allocation flag.
func (h *Explicit) Check() error {
	data := h.arena.Bytes()

	// Walk the block run between prologue and epilogue.
	free := make(map[int]bool)
	prevFree := false
	for off := h.base; ; off = format.NextBlock(data, off) {
		size := format.BlockSize(data, off)
		if size == 0 {
			// Epilogue: must be the allocated boundary tag at the very
			// end of the region.
			if !format.BlockAllocated(data, off) {
				return fmt.Errorf("heap: check: epilogue at %d not allocated", off)
			}
			if off+format.Overhead != len(data) {
				return fmt.Errorf("heap: check: epilogue at %d, region ends at %d",
					off, len(data))
			}
			break
		}
		if size < format.MinPayload || size%format.Alignment != 0 {
			return fmt.Errorf("heap: check: block at %d has illegal size %d", off, size)
		}
		footer := off + format.Overhead + size
		if footer+format.WordSize > len(data) {
			return fmt.Errorf("heap: check: block at %d overruns the region", off)
		}
		if format.Word(data, off+format.WordSize) != format.Word(data, footer) {
			return fmt.Errorf("heap: check: block at %d header/footer mismatch", off)
		}
		if format.BlockAllocated(data, off) {
			prevFree = false
			continue
		}
		if prevFree {
			return fmt.Errorf("heap: check: adjacent free blocks at %d", off)
		}
		prevFree = true
		free[off] = true
	}

	// Walk the free list forward and verify linkage plus membership.
	seen := 0
	for n := nodeNext(data, h.list.head); n != h.list.tail; n = nodeNext(data, n) {
		if n < 0 || n+format.Alignment > len(data) {
			return fmt.Errorf("heap: check: free list node %d out of bounds", n)
		}
		next := nodeNext(data, n)
		prev := nodePrev(data, n)
		if next < 0 || next+format.Alignment > len(data) ||
			prev < 0 || prev+format.Alignment > len(data) {
			return fmt.Errorf("heap: check: free list links at node %d out of bounds", n)
		}
		if nodePrev(data, next) != n || nodeNext(data, prev) != n {
			return fmt.Errorf("heap: check: free list linkage broken at node %d", n)
		}
		off := blockFromNode(n)
		if !free[off] {
			return fmt.Errorf("heap: check: listed block at %d is not a free block", off)
		}
		seen++
		if seen > len(free) {
			return fmt.Errorf("heap: check: free list longer than free block count %d", len(free))
		}
	}
	if seen != len(free) {
		return fmt.Errorf("heap: check: %d free blocks but %d list nodes", len(free), seen)
	}
	return nil
}
