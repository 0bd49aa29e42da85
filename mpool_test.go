package mpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAllocFree(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	h := Create(nil, 40, nil, nil)
	require.True(t, h.Avail())

	m := h.Alloc()
	require.NotNil(t, m)
	require.Equal(t, 40, Size(m))
	require.Len(t, m.Bytes(), 40)

	Free(m)
}

func TestFreeIsIdempotentAfterDestroy(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	h := Create(nil, 16, nil, nil)
	m := h.Alloc()
	require.NotNil(t, m)

	h.Destroy()
	require.False(t, h.Avail())

	// A stale free against a destroyed pool is a silent no-op, not a panic.
	require.NotPanics(t, func() { Free(m) })
}

func TestAllocCallbacks(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	var allocCount, freeCount int
	h := Create(nil, 8, func(b []byte) { allocCount++ }, func(b []byte) { freeCount++ })

	m := h.Alloc()
	require.Equal(t, 1, allocCount)
	require.Equal(t, 0, freeCount)

	Free(m)
	require.Equal(t, 1, freeCount)
}

func TestNodeReuseAfterFree(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	h := Create(nil, 24, nil, nil)

	first := h.Alloc()
	firstBytes := first.Bytes()
	Free(first)

	second := h.Alloc()
	// The freed slice sits at the head of the pool's free list, so the very
	// next allocation of the same size reuses the same backing bytes.
	require.Equal(t, &firstBytes[0], &second.Bytes()[0])
}

func TestAutoFreeNodeThreshold(t *testing.T) {
	require.True(t, Init(WithAutoFreeThreshold(0)))
	defer Finalize()

	h := Create(nil, 32, nil, nil)

	var allocated []*Mem
	for i := 0; i < 256; i++ {
		m := h.Alloc()
		require.NotNil(t, m)
		allocated = append(allocated, m)
	}
	for _, m := range allocated {
		Free(m)
	}

	// With the threshold forced to zero, every node whose last slice was
	// just freed was returned to the system; a fresh allocation must bump-
	// allocate from a brand new node rather than reuse the old free list.
	m := h.Alloc()
	require.NotNil(t, m)
}

func TestConcurrentAllocFree(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	h := Create(nil, 48, nil, nil)

	const goroutines = 2
	const cycles = 10000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < cycles; i++ {
				m := h.Alloc()
				require.NotNil(t, m)
				Free(m)
			}
		}()
	}
	wg.Wait()
}

func TestMultiDispatch(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	h := CreateMulti(nil, nil, nil, 64, 128, 256)
	require.True(t, h.Avail())

	m := AllocMulti(&h, 0)
	require.NotNil(t, m)
	require.Equal(t, 64, Size(m))
	Free(m)

	m = AllocMulti(&h, 100)
	require.Equal(t, 128, Size(m))
	Free(m)

	m = AllocMulti(&h, 256)
	require.Equal(t, 256, Size(m))
	Free(m)
}

func TestMultiDispatchOversize(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	h := CreateMulti(nil, nil, nil, 64, 128)
	require.True(t, h.Avail())

	// Bigger than every configured class: a new size class is created on
	// demand, rounded up to the OverrangeUnit boundary.
	m := AllocMulti(&h, 5000)
	require.NotNil(t, m)
	require.True(t, Size(m) >= 5000)
	require.Equal(t, 0, Size(m)%OverrangeUnit)
	Free(m)

	// A second request of a similar size reuses the size class just
	// created instead of creating another one.
	before := len(h.pool.multi)
	m2 := AllocMulti(&h, 5000)
	require.NotNil(t, m2)
	require.Equal(t, before, len(h.pool.multi))
	Free(m2)
}

func TestDestroyCascadesToChildren(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	p := Create(nil, 256, nil, nil)
	c := Create(&p, 128, nil, nil)
	m := c.Alloc()
	require.NotNil(t, m)

	p.Destroy()

	require.False(t, p.Avail())
	require.False(t, c.Avail())
}

func TestNodeGrowsOnExhaustion(t *testing.T) {
	require.True(t, Init())
	defer Finalize()

	h := Create(nil, 256, nil, nil)
	_, sliceCount, nodeSize := sliceGeometry(256)

	before := occupation()
	var allocated []*Mem
	for i := 0; i < sliceCount+1; i++ {
		m := h.Alloc()
		require.NotNil(t, m)
		allocated = append(allocated, m)
	}

	// The (sliceCount+1)th allocation exhausted the first node's bump
	// region and every free slice (there were none yet), so a second node
	// must have been acquired from the system. The pool had no node when
	// before was read, so both nodes count towards the occupation growth.
	nodeCount := 0
	for n := h.pool.firstNode; n != nil; n = n.next {
		nodeCount++
	}
	require.Equal(t, 2, nodeCount)
	require.Equal(t, before+2*int64(nodeSize), occupation())

	for _, m := range allocated {
		Free(m)
	}
}

func TestInitFinalizeRefCounting(t *testing.T) {
	require.True(t, Init())
	require.True(t, Init())

	h := Create(nil, 8, nil, nil)
	require.True(t, h.Avail())

	Finalize()
	// Still one reference outstanding: the global pool must still be usable.
	require.True(t, h.Avail())

	Finalize()
}
