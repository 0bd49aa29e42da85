package mpool

import "github.com/lunfardo314/mpool/util"

// Handle is the only legal external reference to a Pool: a (pool, tag)
// pair. The zero Handle is the sentinel invalid handle, returned on
// creation failure.
type Handle struct {
	pool *Pool
	tag  int64
}

// Avail reports whether h still names a live pool: the pool pointer is
// non-nil, its own recorded tag matches h's tag, and the tag of the slice
// that conceptually holds the pool object matches too. Destroying any
// ancestor of h's pool — including h's pool itself — makes this false.
func (h Handle) Avail() bool {
	if h.pool == nil {
		return false
	}
	p := h.pool
	if p.selfSlice == nil {
		// Only the global pool has no selfSlice, and it is never handed
		// out as a Handle.
		return false
	}
	return h.tag == p.sliceTag && h.tag == p.selfSlice.tag
}

// Create creates a pool for fixed-size objects of objectSize bytes. If
// parent is nil, the new pool's parent is the process-wide global pool.
// onAlloc/onFree, if non-nil, are invoked on a slice's payload whenever it
// transitions to occupied/free (including destroy's best-effort cleanup of
// slices still occupied at destruction time).
//
// Returns the zero Handle on system allocator exhaustion.
func Create(parent *Handle, objectSize int, onAlloc, onFree Callback) Handle {
	return create(resolveParent(parent, "Create"), objectSize, onAlloc, onFree)
}

// Alloc allocates one object from h's pool. Returns nil on system
// allocator exhaustion. h must be Avail(); an invalid handle is a
// programming error and panics, matching the source's assert().
func (h Handle) Alloc() *Mem {
	util.Assertf(h.Avail(), "Alloc: invalid handle")
	return h.pool.allocPublic()
}

// Destroy recursively destroys h's pool: every descendant is destroyed in
// post-order, on_free (if set) is invoked on every slice still occupied,
// every node is returned to the system, and finally h's pool's own
// backing slice in its parent is freed — which is what invalidates any
// other Handle copy pointing at this pool. Destroying a multi-size pool's
// designated handle destroys every pool in its size-class group.
//
// h must be Avail() and must not name the global pool; both are
// programming errors and panic.
func (h *Handle) Destroy() {
	util.Assertf(h.Avail(), "Destroy: invalid handle")
	p := h.pool
	util.Assertf(p != globalPool(), "Destroy: the global pool is destroyed only by Finalize")

	if p.multi != nil {
		for _, member := range p.multi {
			destroyPool(member, false)
		}
	} else {
		destroyPool(p, false)
	}

	h.pool = nil
	h.tag = 0
}

// resolveParent resolves a (possibly nil) parent handle to a *Pool,
// defaulting to the global pool, and asserts validity — the same
// assertion Create/CreateMulti perform on a non-nil parent in the source.
func resolveParent(h *Handle, op string) *Pool {
	if h == nil {
		return globalPool()
	}
	util.Assertf(h.Avail(), "%s: invalid parent handle", op)
	return h.pool
}
