package mpool

import (
	"sort"

	"github.com/lunfardo314/mpool/util"
)

// createMulti builds a group of sibling pools, one per distinct size
// class in sizes, and records the group on the first (smallest) member's
// multi field so AllocMulti can find it from the Handle CreateMulti
// returns. Unlike the C source, which bootstraps the very first group (M
// itself) by carving its own multi[] array out of its first member's
// memory, every group here is built the same way: multi is an ordinary Go
// slice, never pool-managed memory, so there is no bootstrap special case
// (see SPEC_FULL.md's REDESIGN FLAGS).
func createMulti(parent *Pool, onAlloc, onFree Callback, sizes []int) Handle {
	if len(sizes) == 0 {
		sizes = defaultMultiSizeClasses
	}
	sorted := append([]int(nil), sizes...)
	sort.Ints(sorted)
	dedup := sorted[:0]
	for i, sz := range sorted {
		if i == 0 || sz != sorted[i-1] {
			dedup = append(dedup, sz)
		}
	}
	sorted = dedup

	members := make([]*Pool, 0, len(sorted))
	for _, sz := range sorted {
		h := create(parent, sz, onAlloc, onFree)
		if !h.Avail() {
			for _, m := range members {
				destroyPool(m, false)
			}
			return Handle{}
		}
		members = append(members, h.pool)
	}
	members[0].multi = members
	return Handle{pool: members[0], tag: members[0].sliceTag}
}

// CreateMulti creates a group of pools spanning sizes, one size class
// each, dispatched through a single Handle by AllocMulti. If parent is
// nil, the group's pools are children of the global pool. Duplicate sizes
// collapse to one pool per distinct value in spec.md's dispatch order.
func CreateMulti(parent *Handle, onAlloc, onFree Callback, sizes ...int) Handle {
	return createMulti(resolveParent(parent, "CreateMulti"), onAlloc, onFree, sizes)
}

// AllocMulti allocates size bytes from h's multi-size pool group: the
// smallest member whose object size is >= size, or — if size exceeds
// every configured class — a new size class created on demand, rounded up
// to the next OverrangeUnit boundary and kept for future requests of a
// similar size (the C source's "create a sub-pool for odd large sizes"
// fallback). If h is nil, the process-wide M is used, matching the C
// source's elr_mpl_alloc_multi(NULL, size). Otherwise h must name the pool
// CreateMulti returned, not one of its other members.
func AllocMulti(h *Handle, size int) *Mem {
	if h == nil {
		h = &globalMulti
	}
	util.Assertf(h.Avail(), "AllocMulti: invalid handle")
	p := h.pool
	util.Assertf(p.multi != nil, "AllocMulti: handle is not a multi-size pool")

	p.mu.Lock()
	for _, member := range p.multi {
		if member.objectSize >= size {
			p.mu.Unlock()
			return member.allocPublic()
		}
	}
	parent := p.parent
	if parent == nil {
		parent = globalPool()
	}
	p.mu.Unlock()

	newSize := align(size, OverrangeUnit)
	nh := create(parent, newSize, p.onAlloc, p.onFree)
	if !nh.Avail() {
		return nil
	}

	p.mu.Lock()
	inserted := false
	for i, member := range p.multi {
		if member.objectSize >= newSize {
			p.multi = append(p.multi, nil)
			copy(p.multi[i+1:], p.multi[i:])
			p.multi[i] = nh.pool
			inserted = true
			break
		}
	}
	if !inserted {
		p.multi = append(p.multi, nh.pool)
	}
	p.mu.Unlock()

	return nh.pool.allocPublic()
}
