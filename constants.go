package mpool

const (
	// MaxSliceSize is the slice size (header + object, word-aligned) at or
	// above which a node holds exactly one slice.
	MaxSliceSize = 32768
	// MaxSliceCount is the slice count a node approaches as slice size
	// shrinks towards zero; also the slice count of the pool backing Pool
	// objects themselves (the global pool's own slice size never reaches
	// MaxSliceSize).
	MaxSliceCount = 64
	// OverrangeUnit is the rounding granularity for oversize requests that
	// fall outside every preconfigured multi-pool size class.
	OverrangeUnit = 1024
	// AutoFreeNodeThreshold is the default process-wide occupation (bytes
	// held in live nodes, across every pool) at or above which a node
	// whose last slice was just freed is returned to the system instead of
	// being kept around for reuse. Overridable via WithAutoFreeThreshold.
	AutoFreeNodeThreshold = 512 * 1024 * 1024

	// wordSize is the alignment boundary slice and node sizes round up to.
	wordSize = 8
	// sliceHeaderOverhead and nodeHeaderOverhead are nominal bookkeeping
	// costs folded into slice_size/node_size so the slice-count formula
	// below tracks the same node geometry the C source computes around an
	// actual in-line struct header — even though a Go slice's header
	// (prev/next/node/tag) lives in a separate *sliceRec, not inline
	// before the payload bytes.
	sliceHeaderOverhead = 24
	nodeHeaderOverhead  = 48
	// poolObjectSize stands in for C's sizeof(elr_mem_pool): the nominal
	// size of "a Pool" for the purpose of sizing the global pool's own
	// node geometry. Its exact value only affects how many Pool objects
	// fit in one of the global pool's nodes before a new node is
	// acquired; it is not the size of anything actually stored in a
	// []byte, since a *Pool is an ordinary Go heap object referenced by
	// its owning slice, not bytes carved out of the node's block.
	poolObjectSize = 128

	// defaultMultiSizeClasses are the size classes the process-wide
	// multi-size pool M is created with, unless overridden by
	// WithMultiSizes.
)

var defaultMultiSizeClasses = []int{64, 98, 128, 192, 256, 384, 512, 768, 1024, 1280, 1536, 1792, 2048}

// align rounds size up to the next multiple of boundary, which must be a
// power of two.
func align(size, boundary int) int {
	return (size + boundary - 1) &^ (boundary - 1)
}

// sliceGeometry computes slice_size, slice_count and node_size for a pool
// whose objects are objectSize bytes, per spec's slice-count formula.
func sliceGeometry(objectSize int) (sliceSize, sliceCount, nodeSize int) {
	sliceSize = align(sliceHeaderOverhead, wordSize) + align(objectSize, wordSize)
	if sliceSize >= MaxSliceSize {
		sliceCount = 1
	} else {
		sliceCount = MaxSliceCount - sliceSize*(MaxSliceCount-1)/MaxSliceSize
	}
	nodeSize = sliceSize*sliceCount + align(nodeHeaderOverhead, wordSize)
	return
}
