// Package mpool implements a hierarchical fixed-size-block memory pool
// allocator: pools of equally-sized slices, organized in nodes, organized
// in a parent/child tree, so that destroying a parent reclaims every
// descendant in one call. A tagged Handle is the only legal way to name a
// Pool from the outside; the tag detects use of a handle after its pool
// (or an ancestor of its pool) has been destroyed.
//
// A single process-wide global pool (accessible only indirectly, as the
// implicit parent of any Pool created with a nil parent handle) and a
// single process-wide multi-size pool service allocations that don't name
// an explicit pool. Both come up on the first Init call and go down on the
// matching Finalize, via a reference count so unrelated subsystems can
// initialize the allocator without coordinating with each other.
//
// mpool amortizes calls to the underlying system allocator (see package
// blocksource) by carving many same-size slices out of one acquired block,
// and hands unused blocks back to the system only once total occupation
// crosses AutoFreeNodeThreshold — see Free.
package mpool
