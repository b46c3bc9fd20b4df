package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// newTestHeap builds an explicit heap over an unlimited slice arena.
func newTestHeap(t *testing.T) *Explicit {
	t.Helper()
	h, err := New(arena.NewSlice(0))
	require.NoError(t, err)
	require.NoError(t, h.Check())
	return h
}

func TestNew_InitFailureSurfaces(t *testing.T) {
	// Room for the head anchor only; reserving the tail anchor fails.
	_, err := New(arena.NewSlice(20))
	require.ErrorIs(t, err, ErrInitFailed)
	require.ErrorIs(t, err, arena.ErrExhausted)
}

func TestAlloc_ReusesFreedBlock(t *testing.T) {
	h := newTestHeap(t)

	p1, _, err := h.Alloc(8)
	require.NoError(t, err)
	require.NoError(t, h.Free(p1))

	p2, _, err := h.Alloc(8)
	require.NoError(t, err)

	// The freed block must be reused, not new arena growth.
	assert.Equal(t, p1, p2)
	assert.Equal(t, 1, h.Stats().GrowCalls)
	assert.Equal(t, 1, h.Stats().ReuseHits)
	require.NoError(t, h.Check())
}

func TestFree_CoalescesAdjacentBlocks(t *testing.T) {
	h := newTestHeap(t)

	p1, _, err := h.Alloc(32)
	require.NoError(t, err)
	p2, _, err := h.Alloc(32)
	require.NoError(t, err)

	require.NoError(t, h.Free(p1))
	require.NoError(t, h.Check())
	require.NoError(t, h.Free(p2))
	require.NoError(t, h.Check())

	// Both payloads plus the metadata saved by merging.
	blocks := h.Blocks()
	require.Len(t, blocks, 1)
	assert.False(t, blocks[0].Allocated)
	assert.Equal(t, p1, blocks[0].Off)
	assert.Equal(t, 32+32+format.Overhead, blocks[0].Size)
	assert.Equal(t, 1, h.Stats().CoalesceLeft)
}

func TestFree_CoalescesRightward(t *testing.T) {
	h := newTestHeap(t)

	p1, _, err := h.Alloc(32)
	require.NoError(t, err)
	p2, _, err := h.Alloc(32)
	require.NoError(t, err)

	// Free in reverse order: p2 first, then p1 merges rightward into it.
	require.NoError(t, h.Free(p2))
	require.NoError(t, h.Free(p1))
	require.NoError(t, h.Check())

	blocks := h.Blocks()
	require.Len(t, blocks, 1)
	assert.False(t, blocks[0].Allocated)
	assert.Equal(t, 32+32+format.Overhead, blocks[0].Size)
	assert.Equal(t, 1, h.Stats().CoalesceRight)
}

func TestFree_CoalescesBothNeighbors(t *testing.T) {
	h := newTestHeap(t)

	p1, _, err := h.Alloc(32)
	require.NoError(t, err)
	p2, _, err := h.Alloc(32)
	require.NoError(t, err)
	p3, _, err := h.Alloc(32)
	require.NoError(t, err)

	require.NoError(t, h.Free(p1))
	require.NoError(t, h.Free(p3))
	// Freeing the middle block merges all three.
	require.NoError(t, h.Free(p2))
	require.NoError(t, h.Check())

	blocks := h.Blocks()
	require.Len(t, blocks, 1)
	assert.False(t, blocks[0].Allocated)
	assert.Equal(t, 3*32+2*format.Overhead, blocks[0].Size)
}

func TestAlloc_PayloadsAreAligned(t *testing.T) {
	h := newTestHeap(t)

	for _, n := range []int{1, 8, 15, 16, 17, 100, 255} {
		p, buf, err := h.Alloc(n)
		require.NoError(t, err)
		assert.Zerof(t, int(p)%format.Alignment, "Alloc(%d) payload at %d not aligned", n, p)
		assert.GreaterOrEqual(t, len(buf), n)
	}
	require.NoError(t, h.Check())
}

func TestAlloc_SplitLeavesLegalBlocks(t *testing.T) {
	h := newTestHeap(t)

	p, _, err := h.Alloc(256)
	require.NoError(t, err)
	require.NoError(t, h.Free(p))

	p2, buf, err := h.Alloc(32)
	require.NoError(t, err)
	assert.Equal(t, p, p2)
	assert.Len(t, buf, 32)

	blocks := h.Blocks()
	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].Allocated)
	assert.Equal(t, 32, blocks[0].Size)
	assert.False(t, blocks[1].Allocated)
	assert.Equal(t, 256-32-format.Overhead, blocks[1].Size)
	for _, b := range blocks {
		assert.GreaterOrEqual(t, b.Size, format.MinPayload)
	}
	assert.Equal(t, 1, h.Stats().Splits)
	require.NoError(t, h.Check())
}

func TestAlloc_NoSplitWhenRemainderTooSmall(t *testing.T) {
	h := newTestHeap(t)

	p, _, err := h.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, h.Free(p))

	// 64 < 48 + 2*Overhead: the remainder could not stand alone, so the
	// whole block is handed out.
	p2, buf, err := h.Alloc(48)
	require.NoError(t, err)
	assert.Equal(t, p, p2)
	assert.Len(t, buf, 64)

	blocks := h.Blocks()
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].Allocated)
	assert.Zero(t, h.Stats().Splits)
	require.NoError(t, h.Check())
}

func TestAlloc_RoundTrip(t *testing.T) {
	h := newTestHeap(t)

	p1, buf1, err := h.Alloc(64)
	require.NoError(t, err)
	p2, buf2, err := h.Alloc(64)
	require.NoError(t, err)

	for i := range buf1 {
		buf1[i] = 0xAA
	}
	for i := range buf2 {
		buf2[i] = 0xBB
	}

	// A third allocation and a free must not disturb live payloads.
	p3, _, err := h.Alloc(128)
	require.NoError(t, err)
	require.NoError(t, h.Free(p3))

	for i, b := range h.Payload(p1) {
		require.Equalf(t, byte(0xAA), b, "payload 1 corrupted at %d", i)
	}
	for i, b := range h.Payload(p2) {
		require.Equalf(t, byte(0xBB), b, "payload 2 corrupted at %d", i)
	}
	require.NoError(t, h.Check())
}

func TestFree_NilIsNoOp(t *testing.T) {
	h := newTestHeap(t)

	require.NoError(t, h.Free(NilPtr))
	assert.Zero(t, h.Stats().FreeCalls)
	assert.Empty(t, h.Blocks())
	require.NoError(t, h.Check())
}

func TestFree_OutOfRangeRef(t *testing.T) {
	h := newTestHeap(t)
	require.ErrorIs(t, h.Free(Ptr(8)), ErrBadRef)
}

func TestRealloc_GrowPreservesContent(t *testing.T) {
	h := newTestHeap(t)

	p, buf, err := h.Alloc(32)
	require.NoError(t, err)
	for i := range buf {
		buf[i] = byte(i)
	}

	newP, newBuf, err := h.Realloc(p, 64)
	require.NoError(t, err)
	assert.NotEqual(t, p, newP)
	assert.GreaterOrEqual(t, len(newBuf), 64)
	for i := 0; i < 32; i++ {
		assert.Equalf(t, byte(i), newBuf[i], "byte %d lost in realloc", i)
	}

	// The old block is free again.
	blocks := h.Blocks()
	require.NotEmpty(t, blocks)
	assert.False(t, blocks[0].Allocated)
	require.NoError(t, h.Check())
}

func TestRealloc_ShrinkCopiesPrefix(t *testing.T) {
	h := newTestHeap(t)

	p, buf, err := h.Alloc(64)
	require.NoError(t, err)
	for i := range buf {
		buf[i] = byte(i)
	}

	newP, newBuf, err := h.Realloc(p, 16)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(newBuf), 16)
	for i := 0; i < 16; i++ {
		assert.Equal(t, byte(i), newBuf[i])
	}
	assert.NotEqual(t, p, newP)
	require.NoError(t, h.Check())
}

func TestRealloc_NilBehavesAsAlloc(t *testing.T) {
	h := newTestHeap(t)

	p, buf, err := h.Realloc(NilPtr, 32)
	require.NoError(t, err)
	assert.NotEqual(t, NilPtr, p)
	assert.GreaterOrEqual(t, len(buf), 32)
	require.NoError(t, h.Check())
}

func TestRealloc_ZeroBehavesAsFree(t *testing.T) {
	h := newTestHeap(t)

	p, _, err := h.Alloc(32)
	require.NoError(t, err)

	newP, buf, err := h.Realloc(p, 0)
	require.NoError(t, err)
	assert.Equal(t, NilPtr, newP)
	assert.Nil(t, buf)

	blocks := h.Blocks()
	require.Len(t, blocks, 1)
	assert.False(t, blocks[0].Allocated)
	require.NoError(t, h.Check())
}

func TestCalloc_ZeroesReusedBlock(t *testing.T) {
	h := newTestHeap(t)

	p, buf, err := h.Alloc(32)
	require.NoError(t, err)
	for i := range buf {
		buf[i] = 0xFF
	}
	require.NoError(t, h.Free(p))

	p2, zeroed, err := h.Calloc(4, 8)
	require.NoError(t, err)
	assert.Equal(t, p, p2)
	require.Len(t, zeroed, 32)
	for i, b := range zeroed {
		require.Zerof(t, b, "calloc payload dirty at %d", i)
	}
	require.NoError(t, h.Check())
}

func TestAlloc_ArenaExhaustion(t *testing.T) {
	// Room for the region prefix plus nothing else.
	h, err := New(arena.NewSlice(64))
	require.NoError(t, err)

	_, _, err = h.Alloc(64)
	require.ErrorIs(t, err, ErrNoSpace)
	require.ErrorIs(t, err, arena.ErrExhausted)

	// The failed allocation left the heap unchanged.
	assert.Empty(t, h.Blocks())
	require.NoError(t, h.Check())
}

func TestAlloc_NegativeSize(t *testing.T) {
	h := newTestHeap(t)
	_, _, err := h.Alloc(-1)
	require.ErrorIs(t, err, ErrBadSize)
}

func TestStats_Counters(t *testing.T) {
	h := newTestHeap(t)

	p1, _, err := h.Alloc(128)
	require.NoError(t, err)
	require.NoError(t, h.Free(p1))
	_, _, err = h.Alloc(32) // reuse with split
	require.NoError(t, err)

	s := h.Stats()
	assert.Equal(t, 2, s.AllocCalls)
	assert.Equal(t, 1, s.FreeCalls)
	assert.Equal(t, 1, s.GrowCalls)
	assert.Equal(t, int64(128+format.Overhead), s.GrowBytes)
	assert.Equal(t, 1, s.ReuseHits)
	assert.Equal(t, 1, s.Splits)
}
