package arena

import "fmt"

// Slice is an Arena backed by an ordinary byte slice. Growth may move
// the backing array, so slices from Bytes must be re-derived after
// Extend. An optional limit caps total size, which lets callers
// exercise the exhaustion path deterministically.
type Slice struct {
	buf   []byte
	limit int
}

// NewSlice returns a slice-backed arena. A limit <= 0 means unlimited.
func NewSlice(limit int) *Slice {
	return &Slice{limit: limit}
}

// Extend appends n zero bytes and returns the offset of the first one.
func (s *Slice) Extend(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("arena: negative extend %d", n)
	}
	off := len(s.buf)
	if s.limit > 0 && off+n > s.limit {
		return 0, fmt.Errorf("%w: %d + %d exceeds limit %d", ErrExhausted, off, n, s.limit)
	}
	s.buf = append(s.buf, make([]byte, n)...)
	return off, nil
}

// Bytes returns the current region contents.
func (s *Slice) Bytes() []byte {
	return s.buf
}

// Size returns the current region length.
func (s *Slice) Size() int {
	return len(s.buf)
}
