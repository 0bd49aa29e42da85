package mpool

import (
	"sync"

	"github.com/lunfardo314/mpool/blocksource"
)

// Callback is invoked on a slice's payload at the moment it transitions
// to occupied (onAlloc) or back to free (onFree), including the
// best-effort cleanup pass destroy runs over slices still occupied at
// destruction time.
type Callback func(payload []byte)

// Pool is a collection of nodes, all carved into the same slice size,
// feeding allocations of one fixed object size. Pools form a tree: every
// non-global Pool has a parent and resides, conceptually, as a payload
// inside one slice of that parent (see selfSlice).
type Pool struct {
	mu sync.Mutex

	parent                 *Pool
	firstChild, prev, next *Pool

	// multi is non-nil only on the first pool of a CreateMulti group: it
	// lists every sibling in that group, in the order the group was
	// created. Only this designated pool is valid with AllocMulti.
	multi []*Pool

	objectSize int
	sliceSize  int
	sliceCount int
	nodeSize   int

	firstNode      *node
	newlyAllocNode *node

	firstFreeSlice     *sliceRec
	firstOccupiedSlice *sliceRec

	onAlloc, onFree Callback

	source blocksource.Source

	// selfSlice is the slice, in parent, whose payload this Pool
	// conceptually occupies; nil only for the global pool, which has no
	// parent. sliceTag is a copy of selfSlice.tag taken at creation time;
	// a mismatch between the two means this pool has been destroyed.
	selfSlice *sliceRec
	sliceTag  int64
}

// create allocates a slice from parent to host the new pool, computes its
// geometry, and splices it at the head of parent's child list. It is the
// shared implementation behind the public Create and the internal pool
// creation CreateMulti and AllocMulti's oversize path both need.
func create(parent *Pool, objectSize int, onAlloc, onFree Callback) Handle {
	s := parent.allocSliceFromPool()
	if s == nil {
		return Handle{}
	}

	sliceSize, sliceCount, nodeSize := sliceGeometry(objectSize)
	p := &Pool{
		parent:     parent,
		objectSize: objectSize,
		sliceSize:  sliceSize,
		sliceCount: sliceCount,
		nodeSize:   nodeSize,
		onAlloc:    onAlloc,
		onFree:     onFree,
		source:     parent.source,
		selfSlice:  s,
		sliceTag:   s.tag,
	}

	parent.mu.Lock()
	p.prev = nil
	p.next = parent.firstChild
	if p.next != nil {
		p.next.prev = p
	}
	parent.firstChild = p
	parent.mu.Unlock()

	return Handle{pool: p, tag: p.sliceTag}
}

// allocSliceFromPool obtains one slice from p: from the free list if one is
// available, otherwise by bump-allocating from (and, if needed, acquiring)
// a node. Returns nil on system allocator exhaustion.
func (p *Pool) allocSliceFromPool() *sliceRec {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.selfSlice != nil && p.selfSlice.tag != p.sliceTag {
		// p itself has already been destroyed.
		return nil
	}

	s := p.takeFreeSliceLocked()
	if s == nil {
		if p.newlyAllocNode == nil {
			if !p.allocNodeLocked() {
				return nil
			}
		}
		s = p.sliceFromNodeLocked()
	}

	s.prev = nil
	s.next = p.firstOccupiedSlice
	if p.firstOccupiedSlice != nil {
		p.firstOccupiedSlice.prev = s
	}
	p.firstOccupiedSlice = s

	return s
}

// takeFreeSliceLocked detaches and returns the head of p's free list,
// repairing the owning node's free subrange accounting. Returns nil if the
// free list is empty. Caller must hold p.mu.
func (p *Pool) takeFreeSliceLocked() *sliceRec {
	s := p.firstFreeSlice
	if s == nil {
		return nil
	}

	p.firstFreeSlice = s.next
	s.node.freeHead = nil
	if p.firstFreeSlice != nil {
		p.firstFreeSlice.prev = nil
		if s.next.node == s.node {
			s.node.freeHead = s.next
		}
	}
	if s.node.freeHead == nil {
		s.node.freeTail = nil
	}

	s.next = nil
	s.prev = nil
	s.tag++
	s.node.usingSliceCount++

	return s
}

// allocPublic is the implementation behind Handle.Alloc and the final step
// of AllocMulti.
func (p *Pool) allocPublic() *Mem {
	s := p.allocSliceFromPool()
	if s == nil {
		return nil
	}
	if p.onAlloc != nil {
		p.onAlloc(s.payload)
	}
	return &Mem{slice: s}
}

// Free returns m's slice to its owning pool. A stale free — the owning
// pool (or one of its ancestors) has already been destroyed — is silently
// a no-op, per spec.md §4.6/§7.3.
func Free(m *Mem) {
	if m == nil || m.slice == nil {
		return
	}
	p := m.slice.node.owner

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.selfSlice != nil && p.selfSlice.tag != p.sliceTag {
		return
	}
	freeSliceLocked(p, m.slice)
}

// freeSliceLocked detaches s from p's occupied list, invokes on_free,
// applies the auto-release policy, and otherwise splices s into its
// node's free subrange. Caller must hold p.mu and have already confirmed p
// is still live.
func freeSliceLocked(p *Pool, s *sliceRec) {
	n := s.node

	s.tag++
	n.usingSliceCount--
	if p.onFree != nil {
		p.onFree(s.payload)
	}

	if s.next != nil {
		s.next.prev = s.prev
	}
	if s.prev != nil {
		s.prev.next = s.next
	} else {
		p.firstOccupiedSlice = s.next
	}

	if n.usingSliceCount == 0 && occupation() >= autoFreeThreshold() {
		freeNodeLocked(n)
		return
	}

	if n.freeHead == nil {
		n.freeHead = s
		n.freeTail = s
		s.prev = nil
		s.next = p.firstFreeSlice
		if p.firstFreeSlice != nil {
			p.firstFreeSlice.prev = s
		}
		p.firstFreeSlice = s
	} else {
		s.next = n.freeTail.next
		if n.freeTail.next != nil {
			n.freeTail.next.prev = s
		}
		n.freeTail.next = s
		s.prev = n.freeTail
		n.freeTail = s
	}
}
