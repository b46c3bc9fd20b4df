//go:build linux || darwin || freebsd

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap_ExtendAndClose(t *testing.T) {
	a, err := NewMmap(1 << 20)
	require.NoError(t, err)
	defer a.Close()

	off, err := a.Extend(4096)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	assert.Equal(t, 4096, a.Size())

	buf := a.Bytes()
	for i := 0; i < 4096; i++ {
		assert.Zero(t, buf[i])
	}
}

func TestMmap_BaseIsStableAcrossGrowth(t *testing.T) {
	a, err := NewMmap(1 << 20)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Extend(64)
	require.NoError(t, err)
	before := a.Bytes()
	before[0] = 0xAB

	_, err = a.Extend(1 << 16)
	require.NoError(t, err)
	after := a.Bytes()

	// Unlike a slice arena, the base address never moves.
	assert.True(t, &before[0] == &after[0], "mapping base moved")
	assert.Equal(t, byte(0xAB), after[0])
}

func TestMmap_ReservationExhaustion(t *testing.T) {
	a, err := NewMmap(4096)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Extend(4096)
	require.NoError(t, err)

	_, err = a.Extend(1)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestMmap_CloseTwice(t *testing.T) {
	a, err := NewMmap(4096)
	require.NoError(t, err)
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
