//go:build linux || darwin || freebsd

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultReserve is the address-space reservation used when no size is
// given: 1 GiB. Pages are committed lazily by the kernel, so reserving
// generously costs nothing up front.
const DefaultReserve = 1 << 30

// Mmap is an Arena backed by an anonymous memory mapping. The whole
// reservation is mapped once, so the base address never moves and
// payload slices handed out by a heap stay valid across growth.
type Mmap struct {
	data []byte
	size int
}

// NewMmap maps an anonymous region of up to reserve bytes and returns
// an arena over it. reserve <= 0 selects DefaultReserve.
func NewMmap(reserve int) (*Mmap, error) {
	if reserve <= 0 {
		reserve = DefaultReserve
	}
	pageSize := unix.Getpagesize()
	reserve = (reserve + pageSize - 1) &^ (pageSize - 1)

	data, err := unix.Mmap(-1, 0, reserve,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|mapExtraFlags)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap %d bytes: %w", reserve, err)
	}
	return &Mmap{data: data}, nil
}

// Extend grows the region by n bytes within the reservation.
func (m *Mmap) Extend(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("arena: negative extend %d", n)
	}
	if m.size+n > len(m.data) {
		return 0, fmt.Errorf("%w: %d + %d exceeds reservation %d",
			ErrExhausted, m.size, n, len(m.data))
	}
	off := m.size
	m.size += n
	return off, nil
}

// Bytes returns the committed portion of the mapping. The base address
// is stable, so the slice remains valid across Extend.
func (m *Mmap) Bytes() []byte {
	return m.data[:m.size]
}

// Size returns the current region length.
func (m *Mmap) Size() int {
	return m.size
}

// Close unmaps the reservation. The arena must not be used afterward.
func (m *Mmap) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	m.size = 0
	return err
}
