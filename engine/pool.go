package engine

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"os"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/npillmayer/cascade/styledtree"
)

// Environment overrides for pool construction, read once by EnsurePool and
// not observed thereafter.
const (
	// ThreadCountEnv overrides the number of styling worker threads.
	ThreadCountEnv = "CASCADE_STYLE_THREADS"
	// ForceSingleWorkerEnv ("1"/"true") permits a one-worker pool instead
	// of degrading it to sequential execution. Used for deterministic
	// testing of the parallel code path.
	ForceSingleWorkerEnv = "CASCADE_FORCE_SINGLE_WORKER"
)

// Maximum number of concurrent styling workers.
const maxWorkerCount = 6

// Pool is a fixed-size fork-join worker pool for styling traversals,
// together with the scoped per-worker cache array. A pool with zero
// workers runs traversals sequentially.
//
// A pool is process-wide shared state, but one traversal at a time: the
// per-worker caches are keyed by worker index only, not by traversal
// identity, so two concurrent traversals would corrupt each other.
// Traverse panics if it detects such sharing.
type Pool struct {
	workers int
	caches  []workerCache
	busy    int32 // atomic; a traversal is in flight
	visited func(depth int, wno int, sn *styledtree.StyNode) // test instrumentation
}

// EnsurePool creates a worker pool. requested overrides the sizing
// heuristic when positive; zero means "no override", in which case the
// environment override is consulted and otherwise the heuristic
// clamp(logical cores · 3/4, 1, 6) applies. A computed size of exactly one
// degrades to zero workers (sequential execution), unless the single-worker
// override is set.
func EnsurePool(requested int) *Pool {
	if requested <= 0 {
		if env, err := strconv.Atoi(os.Getenv(ThreadCountEnv)); err == nil && env > 0 {
			requested = env
		}
	}
	force := false
	switch os.Getenv(ForceSingleWorkerEnv) {
	case "1", "true", "yes":
		force = true
	}
	n := poolSizeFor(runtime.NumCPU(), requested, force)
	tracer().Infof("styling pool sized to %d workers", n)
	slots := n
	if slots < 1 {
		slots = 1 // the sequential path styles through slot 0
	}
	return &Pool{workers: n, caches: make([]workerCache, slots)}
}

// poolSizeFor is the pure sizing heuristic. Pool creation ending up with
// zero or one thread is not an error; it silently degrades to sequential
// execution.
func poolSizeFor(cores int, requested int, forceSingle bool) int {
	n := requested
	if n <= 0 {
		n = cores * 3 / 4
		if n < 1 {
			n = 1
		}
		if n > maxWorkerCount {
			n = maxWorkerCount
		}
	}
	if n == 1 && !forceSingle {
		n = 0
	}
	return n
}

// Workers returns the number of worker threads; zero means traversals run
// sequentially.
func (p *Pool) Workers() int {
	return p.workers
}

// Sequential is true for a pool which runs traversals without workers.
func (p *Pool) Sequential() bool {
	return p.workers == 0
}

// EvictCaches drops the cached applicable declarations (and sharing
// candidates) of every worker slot. To be called whenever the device's
// screen size changes: cached declarations may embed viewport-relative
// resolved lengths that are now stale.
func (p *Pool) EvictCaches() {
	for i := range p.caches {
		p.caches[i].evict()
	}
	tracer().Debugf("evicted scoped caches of %d worker slots", len(p.caches))
}

// acquire flags the pool busy for one traversal.
func (p *Pool) acquire() {
	if !atomic.CompareAndSwapInt32(&p.busy, 0, 1) {
		panic("engine: pool shared across concurrently running traversals")
	}
}

func (p *Pool) release() {
	atomic.StoreInt32(&p.busy, 0)
}
