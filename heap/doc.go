// Package heap implements a dynamic memory allocator over a growable
// byte arena: allocate, free, resize, and zeroed allocation, with
// individually freeable blocks carved out of one contiguous region.
//
// # Overview
//
// Blocks carry boundary tags: a header and footer word holding the
// payload size with the allocation state in the low bit. The redundant
// footer lets both neighbors of any block be located in constant time,
// which is what makes immediate coalescing cheap.
//
// # Strategies
//
// Two implementations sit behind the Heap interface:
//
//   - Explicit: the production strategy. Free blocks are threaded into a
//     doubly-linked list overlaid on their payload bytes, newest first.
//     Placement is first-fit over that list, biased toward recently
//     freed memory; freeing coalesces with both neighbors immediately.
//
//   - Implicit: a simpler strategy with header-only tags and no free
//     list. Every allocation first sweeps the whole heap merging
//     adjacent free runs, then scans blocks in address order for the
//     first fit. Asymptotically worse, structurally simpler.
//
// Both guarantee that no two adjacent free blocks coexist at the point
// an allocation returns; Explicit additionally guarantees it at the
// point a free returns.
//
// # Usage
//
//	h, err := heap.New(arena.NewSlice(0))
//	if err != nil {
//	    return err
//	}
//
//	p, buf, err := h.Alloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later
//	err = h.Free(p)
//
// The slice returned by Alloc aliases the arena and may be invalidated
// when the heap grows; use Payload to re-derive it from a Ptr.
//
// # Contracts
//
// Freeing NilPtr is a no-op. Freeing an address the heap never returned,
// or freeing twice, is undefined behavior: only cheap bounds checks are
// performed, matching the primitive this replaces. Heaps are not safe
// for concurrent use.
package heap
