package mpool

// destroyPool recursively destroys p in post-order: unlink from the parent
// sibling list, destroy every child, run on_free over whatever is still
// occupied, return every node to the system, poison p's tag, then (unless
// p is the global pool) free p's own backing slice in its parent.
//
// inner distinguishes a top-level call (false — locks parent's mutex
// around the unlink, matching spec.md §5's lock-ordering rule) from a
// recursive call onto a child (true — the parent, i.e. the caller's own
// p, is already unreachable from outside by the time we get here, so the
// unlink proceeds without re-locking it).
func destroyPool(p *Pool, inner bool) {
	if !inner && p.parent != nil {
		p.parent.mu.Lock()
	}

	if p.next != nil {
		p.next.prev = p.prev
	}
	if p.prev != nil {
		p.prev.next = p.next
	} else if p.parent != nil {
		p.parent.firstChild = p.next
	}

	if !inner && p.parent != nil {
		p.parent.mu.Unlock()
	}

	p.mu.Lock()
	for p.firstChild != nil {
		child := p.firstChild
		p.mu.Unlock()
		destroyPool(child, true)
		p.mu.Lock()
	}
	p.mu.Unlock()

	if p.onFree != nil {
		for s := p.firstOccupiedSlice; s != nil; {
			next := s.next
			p.firstOccupiedSlice = next
			p.onFree(s.payload)
			s = next
		}
	}

	for n := p.firstNode; n != nil; {
		next := n.next
		p.firstNode = next
		addOccupation(-int64(p.nodeSize))
		p.source.Release(n.block)
		n = next
	}

	parent := p.parent
	selfSlice := p.selfSlice
	p.parent = nil
	p.sliceTag = -1
	p.multi = nil

	if parent != nil {
		// By this point p is unreachable from the tree (already unlinked
		// above), so nothing else can be contending for parent's lock on
		// p's behalf.
		parent.mu.Lock()
		freeSliceLocked(parent, selfSlice)
		parent.mu.Unlock()
	}
}
