// Package arena provides the growth primitive backing a heap: a
// contiguous, process-owned byte region that grows at the end and is
// never shrunk or relocated.
package arena

import "errors"

// ErrExhausted is returned when an arena cannot grow any further.
var ErrExhausted = errors.New("arena: exhausted")

// Arena is a monotonically growing byte region. Offsets returned by
// Extend stay valid for the life of the arena; each extension is
// contiguous with the previous one.
type Arena interface {
	// Extend grows the region by n bytes and returns the offset of the
	// first new byte. The new bytes read as zero.
	Extend(n int) (int, error)

	// Bytes returns the current contents of the region. The slice may
	// be invalidated by the next call to Extend; callers re-derive it
	// after every growth.
	Bytes() []byte

	// Size returns the current length of the region in bytes.
	Size() int
}
