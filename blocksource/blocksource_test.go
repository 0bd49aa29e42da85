package blocksource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectAcquireRelease(t *testing.T) {
	var d Direct
	b := d.Acquire(128)
	require.Len(t, b, 128)
	d.Release(b) // no-op, must not panic
}

func TestPooledAcquireIsZeroed(t *testing.T) {
	p := NewPooled()
	b := p.Acquire(64)
	require.Len(t, b, 64)
	for _, c := range b {
		require.Equal(t, byte(0), c)
	}
}

func TestPooledRecyclesBlocks(t *testing.T) {
	p := NewPooled()

	b := p.Acquire(256)
	b[0] = 0xff
	p.Release(b)

	// A later Acquire of the same size is zeroed again, even though it may
	// be the very same backing array handed back by the sync.Pool.
	b2 := p.Acquire(256)
	require.Equal(t, byte(0), b2[0])
}

func TestPooledDistinctSizesDoNotMix(t *testing.T) {
	p := NewPooled()
	a := p.Acquire(32)
	b := p.Acquire(64)
	require.Len(t, a, 32)
	require.Len(t, b, 64)
	p.Release(a)
	p.Release(b)
}
