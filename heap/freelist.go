package heap

import "github.com/joshuapare/heapkit/internal/format"

// The free-space index: a doubly-linked list threaded through the
// payload bytes of free blocks. A free block's first two payload words
// are repurposed as prev/next links, so the list costs no memory of
// its own. Two permanent anchor nodes, head and tail, are reserved
// from the arena at init and never unlinked; every real free block is
// linked strictly between them.
//
// Invariant: a block appears in this list exactly when its allocation
// flag is false, and x.next.prev == x == x.prev.next holds for every
// node including the anchors.

// nilOff marks the unused outer links of the anchors (head.prev and
// tail.next). It is never a valid node offset and never dereferenced.
const nilOff = ^uint64(0)

type freeList struct {
	head int // offset of the head anchor node
	tail int // offset of the tail anchor node
}

// init links the anchors to each other with no real blocks between.
func (l *freeList) init(data []byte) {
	format.PutWord(data, l.head, nilOff)
	format.PutWord(data, l.head+format.WordSize, uint64(l.tail))
	format.PutWord(data, l.tail, uint64(l.head))
	format.PutWord(data, l.tail+format.WordSize, nilOff)
}

func nodePrev(data []byte, n int) int {
	return int(format.Word(data, n))
}

func nodeNext(data []byte, n int) int {
	return int(format.Word(data, n+format.WordSize))
}

func setPrev(data []byte, n, prev int) {
	format.PutWord(data, n, uint64(prev))
}

func setNext(data []byte, n, next int) {
	format.PutWord(data, n+format.WordSize, uint64(next))
}

// link inserts the node at n immediately before the tail anchor, so
// the most recently freed block is the first one a search encounters.
func (l *freeList) link(data []byte, n int) {
	prev := nodePrev(data, l.tail)
	setPrev(data, n, prev)
	setNext(data, n, l.tail)
	setPrev(data, l.tail, n)
	setNext(data, prev, n)
}

// unlink splices the node at n out of the list using its own links.
func (l *freeList) unlink(data []byte, n int) {
	prev := nodePrev(data, n)
	next := nodeNext(data, n)
	setNext(data, prev, next)
	setPrev(data, next, prev)
}

// nodeFromBlock returns the list node embedded in the block at off.
func nodeFromBlock(off int) int {
	return off + format.Overhead
}

// blockFromNode returns the block hosting the list node at n.
func blockFromNode(n int) int {
	return n - format.Overhead
}
