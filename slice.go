package mpool

// sliceRec is the bookkeeping header for one allocation unit. It plays the
// role of the C source's elr_mem_slice, minus the pointer arithmetic: the
// payload bytes it describes are reachable through payload, not by
// subtracting a header size from a raw pointer.
type sliceRec struct {
	prev, next *sliceRec
	node       *node
	tag        int64
	payload    []byte
}

// Mem is the handle Alloc/AllocMulti hand back in place of a raw pointer.
// It carries the payload bytes together with the back-reference Size and
// Free need to find the owning slice/node/pool — the Go-safe reading of
// "subtract the header size from the payload pointer" (see SPEC_FULL.md §9).
type Mem struct {
	slice *sliceRec
}

// Bytes returns the object_size-length payload. It is never zeroed between
// reuses of the same slice: only the bookkeeping header is reset on reuse,
// exactly as spec.md §4.4 documents.
func (m *Mem) Bytes() []byte {
	if m == nil || m.slice == nil {
		return nil
	}
	return m.slice.payload
}

// Size returns the object size of the pool m was allocated from.
func Size(m *Mem) int {
	if m == nil || m.slice == nil {
		return 0
	}
	return m.slice.node.owner.objectSize
}
