package format

import "encoding/binary"

// Word-level encoding for arena metadata.
//
// Implementation: encoding/binary.LittleEndian. The compiler inlines
// these calls and reduces them to single loads and stores; unsafe
// variants provide no measurable benefit.

// Word reads the metadata word at off.
func Word(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+WordSize])
}

// PutWord writes the metadata word at off.
func PutWord(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+WordSize], v)
}
