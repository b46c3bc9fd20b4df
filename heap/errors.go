package heap

import "errors"

var (
	// ErrNoSpace indicates the arena could not grow to satisfy an
	// allocation. The failed operation left the heap unchanged.
	ErrNoSpace = errors.New("heap: no space")

	// ErrBadRef indicates a payload address outside the managed region.
	ErrBadRef = errors.New("heap: bad payload address")

	// ErrBadSize indicates a negative requested size.
	ErrBadSize = errors.New("heap: negative size")

	// ErrInitFailed indicates the arena failed while the region prefix
	// was being written. A heap whose constructor returned this must
	// not be used.
	ErrInitFailed = errors.New("heap: init failed")
)
