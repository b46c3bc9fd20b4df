package format

// Boundary-tag codec. This file is the only place arena bytes are
// reinterpreted as block metadata; everything above it works with
// opaque block offsets.
//
// A block at offset off occupies:
//
//	off           predecessor's footer word
//	off+WordSize  header word (payload size | allocated bit)
//	off+Overhead  payload (size bytes)
//	off+Overhead+size  own footer word (doubles as the successor's
//	                   first word)
//
// Callers must never write a tag with a payload size below MinPayload;
// the codec does not check this. A miscomputed size silently corrupts
// the neighboring block.

// PutTag writes a single size-and-state tag word at off.
func PutTag(b []byte, off, size int, allocated bool) {
	v := uint64(size)
	if allocated {
		v |= allocatedBit
	}
	PutWord(b, off, v)
}

// TagSize reads the payload size from the tag word at off.
func TagSize(b []byte, off int) int {
	return int(Word(b, off) &^ allocatedBit)
}

// TagAllocated reads the allocation state from the tag word at off.
func TagAllocated(b []byte, off int) bool {
	return Word(b, off)&allocatedBit != 0
}

// WriteTags writes matching header and footer tags for the block at
// off with the given payload size and allocation state.
func WriteTags(b []byte, off, size int, allocated bool) {
	PutTag(b, off+WordSize, size, allocated)
	PutTag(b, off+Overhead+size, size, allocated)
}

// WriteBoundary writes a zero-size allocated tag at off. The prologue
// footer and the epilogue header are boundary tags: they exist so that
// coalescing never has to special-case the ends of the region.
func WriteBoundary(b []byte, off int) {
	PutWord(b, off, allocatedBit)
}

// BlockSize reads the payload size of the block at off from its header.
func BlockSize(b []byte, off int) int {
	return TagSize(b, off+WordSize)
}

// BlockAllocated reads the allocation state of the block at off.
func BlockAllocated(b []byte, off int) bool {
	return TagAllocated(b, off+WordSize)
}

// PrevSize reads the predecessor's payload size from its footer, which
// is the word immediately at off.
func PrevSize(b []byte, off int) int {
	return TagSize(b, off)
}

// PrevAllocated reads the predecessor's allocation state from its footer.
func PrevAllocated(b []byte, off int) bool {
	return TagAllocated(b, off)
}

// NextBlock returns the offset of the successor of the block at off.
func NextBlock(b []byte, off int) int {
	return off + Overhead + BlockSize(b, off)
}

// NextAllocated reads the successor's allocation state from its header.
// For the last real block the successor header is the epilogue tag,
// which always reads as allocated.
func NextAllocated(b []byte, off int) bool {
	return TagAllocated(b, NextBlock(b, off)+WordSize)
}

// PrevBlock returns the offset of the predecessor of the block at off.
func PrevBlock(b []byte, off int) int {
	return off - PrevSize(b, off) - Overhead
}

// PayloadOff returns the payload offset of the block at off.
func PayloadOff(off int) int {
	return off + Overhead
}

// BlockOff returns the block offset for the payload at off.
func BlockOff(payload int) int {
	return payload - Overhead
}
