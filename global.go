package mpool

import (
	"sync"
	"sync/atomic"

	"github.com/lunfardo314/mpool/util"
)

// g is the root of the pool tree (G) and globalMulti is the handle of the
// process-wide multi-size pool (M) every size-dispatching Alloc goes
// through when no explicit handle is given — the Go analogues of the C source's file-scope g_pool/g_multi
// singletons, reference-counted by Init/Finalize rather than constructed
// once at load time.
var (
	initMu      sync.Mutex
	refCount    int64
	g           Pool
	globalMulti Handle

	occupationSize         int64
	autoFreeThresholdValue int64
)

// globalPool returns the process-wide root pool. Calling it before a
// successful Init is a programming error.
func globalPool() *Pool {
	util.Assertf(atomic.LoadInt64(&refCount) > 0, "mpool: global pool not initialized, call Init first")
	return &g
}

// addOccupation adjusts the process-wide count of bytes held in live
// nodes, across every pool, that the auto-release policy (freeSliceLocked)
// compares against the auto-free threshold.
func addOccupation(delta int64) {
	atomic.AddInt64(&occupationSize, delta)
}

func occupation() int64 {
	return atomic.LoadInt64(&occupationSize)
}

func autoFreeThreshold() int64 {
	return atomic.LoadInt64(&autoFreeThresholdValue)
}

// Init initializes the process-wide global pool G and its companion
// multi-size pool M. Calls nest: Init/Finalize maintain a reference count,
// and only the outermost pair actually constructs/tears down the
// singletons, mirroring elr_mpl_init/elr_mpl_finalize's contract for
// callers that may each Init independently (e.g. two libraries sharing one
// process). Returns false if M could not be created, in which case the
// reference just taken is released again.
func Init(opts ...InitOption) bool {
	initMu.Lock()
	defer initMu.Unlock()

	if atomic.AddInt64(&refCount, 1) > 1 {
		return true
	}

	cfg := defaultInitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	atomic.StoreInt64(&occupationSize, 0)
	atomic.StoreInt64(&autoFreeThresholdValue, cfg.autoFreeThreshold)

	sliceSize, sliceCount, nodeSize := sliceGeometry(poolObjectSize)
	g = Pool{
		source:     cfg.source,
		objectSize: poolObjectSize,
		sliceSize:  sliceSize,
		sliceCount: sliceCount,
		nodeSize:   nodeSize,
	}

	globalMulti = createMulti(&g, nil, nil, cfg.multiSizes)
	if !globalMulti.Avail() {
		atomic.AddInt64(&refCount, -1)
		g = Pool{}
		return false
	}
	return true
}

// Finalize releases one reference taken by Init. When the last reference
// is released, M and every pool still in the tree are destroyed and all
// memory is returned to the system block source.
func Finalize() {
	initMu.Lock()
	defer initMu.Unlock()

	if atomic.AddInt64(&refCount, -1) > 0 {
		return
	}

	if globalMulti.Avail() {
		for _, member := range globalMulti.pool.multi {
			destroyPool(member, false)
		}
	}
	for g.firstChild != nil {
		destroyPool(g.firstChild, false)
	}
	g = Pool{}
	globalMulti = Handle{}
}
