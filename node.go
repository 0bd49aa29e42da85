package mpool

import "github.com/lunfardo314/mpool/util"

// node owns one contiguous block acquired from a Pool's block source,
// carved into slice_count equally-sized slices. Slices are handed out of
// the block's bump region (firstAvail) until it is exhausted, after which
// the pool's free list is the only source of slices for this node.
type node struct {
	owner               *Pool
	prev, next          *node
	freeHead, freeTail  *sliceRec // this node's contiguous run within owner.firstFreeSlice
	usingSliceCount     int       // currently handed out
	usedSliceCount      int       // ever handed out from the bump region
	firstAvail          int       // byte offset into block of the next bump-allocated slice
	block               []byte    // backing storage, from owner.source
}

// allocNodeLocked acquires a fresh node from the pool's block source and
// makes it the pool's bump-allocation node. Caller must hold p.mu.
func (p *Pool) allocNodeLocked() bool {
	block := p.source.Acquire(p.nodeSize)
	if block == nil {
		return false
	}
	n := &node{
		owner:      p,
		block:      block,
		firstAvail: 0,
	}
	addOccupation(int64(p.nodeSize))

	if p.firstNode == nil {
		n.next = nil
	} else {
		n.next = p.firstNode
		p.firstNode.prev = n
	}
	p.firstNode = n
	p.newlyAllocNode = n
	return true
}

// freeNodeLocked returns a node with no slices in use to the system. Caller
// must hold p.mu (p == n.owner).
func freeNodeLocked(n *node) {
	p := n.owner
	util.Assertf(n.usingSliceCount == 0, "freeNode: node still has %d slice(s) in use", n.usingSliceCount)

	if n.freeTail != nil && n.freeTail.next != nil {
		n.freeTail.next.prev = n.freeHead.prev
	}
	if n.freeHead != nil && n.freeHead.prev != nil {
		n.freeHead.prev.next = n.freeTail.next
	}
	if p.firstFreeSlice != nil && p.firstFreeSlice == n.freeHead {
		p.firstFreeSlice = n.freeTail.next
	}

	if p.newlyAllocNode == n {
		p.newlyAllocNode = nil
	}

	if n.next != nil {
		n.next.prev = n.prev
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		p.firstNode = n.next
	}

	addOccupation(-int64(p.nodeSize))
	p.source.Release(n.block)
}

// sliceFromNodeLocked bump-allocates the next never-yet-used slice from the
// pool's newlyAllocNode. Caller must hold p.mu and ensure newlyAllocNode is
// non-nil.
func (p *Pool) sliceFromNodeLocked() *sliceRec {
	n := p.newlyAllocNode
	n.usedSliceCount++
	n.usingSliceCount++

	offset := n.firstAvail
	s := &sliceRec{
		node:    n,
		tag:     0,
		payload: n.block[offset : offset+p.objectSize : offset+p.objectSize],
	}
	n.firstAvail += p.sliceSize

	if n.usedSliceCount == p.sliceCount {
		p.newlyAllocNode = nil
	}
	return s
}
