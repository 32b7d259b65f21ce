package bvh

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tholcomb/raydiant/pkg/bounds"
	"github.com/tholcomb/raydiant/pkg/geometry"
)

// leafRangeThreshold is the smallest range length that is always emitted
// as a leaf without evaluating a split (spec §4.6: "for a range of length
// 1, emit a leaf").
const leafRangeThreshold = 1

// job is one (node index, [start,end) triangle-permutation range) unit
// of work on the shared build queue.
type job struct {
	node       int
	start, end int
}

// buildState is the state shared by every worker in a Build call: the
// job queue (mutex + condvar guarded, per spec §5), the flat node array
// (preallocated so workers can write to disjoint indices without
// synchronization beyond the atomic counter that hands them out), and
// the atomic counters that drive termination.
type buildState struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []job
	done     bool
	nodeNext int64 // atomic: next free node index
	leafed   int64 // atomic: triangles assigned into leaves so far
	total    int64 // total triangle count; build is done when leafed reaches it

	nodes []Node
	perm  []int32
	tris  []geometry.Triangle
}

// Build constructs a BVH over tris using numWorkers concurrent builders
// draining a shared job queue, guarded by one mutex and one condition
// variable exactly as spec §4.6/§5 describes: a worker blocks on the
// condvar when the queue is empty and build is not done; it wakes on a
// new enqueue (notified to one waiter) or on the done flag flipping
// (broadcast to all waiters). Child node indices are handed out with an
// atomic fetch-add so two workers splitting concurrently never collide.
func Build(tris []geometry.Triangle, numWorkers int) *BVH {
	n := len(tris)
	if n == 0 {
		return &BVH{}
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	perm := make([]int32, n)
	for i := range perm {
		perm[i] = int32(i)
	}

	maxNodes := 2*n - 1
	st := &buildState{
		nodes: make([]Node, maxNodes),
		perm:  perm,
		tris:  tris,
		total: int64(n),
	}
	st.cond = sync.NewCond(&st.mu)

	// Reserve node 0 for the root and seed the queue with the full range.
	st.nodeNext = 1
	st.queue = append(st.queue, job{node: 0, start: 0, end: n})

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.worker()
		}()
	}
	wg.Wait()

	return &BVH{
		Nodes:     st.nodes[:st.nodeNext],
		Perm:      st.perm,
		Triangles: tris,
	}
}

// worker drains jobs from the shared queue until the build is done.
func (st *buildState) worker() {
	for {
		st.mu.Lock()
		for len(st.queue) == 0 && !st.done {
			st.cond.Wait()
		}
		if len(st.queue) == 0 && st.done {
			st.mu.Unlock()
			return
		}
		j := st.queue[len(st.queue)-1]
		st.queue = st.queue[:len(st.queue)-1]
		st.mu.Unlock()

		st.process(j)
	}
}

// process builds the node for job j, either emitting a leaf or finding
// the best SAH split and enqueuing both children.
func (st *buildState) process(j job) {
	start, end := j.start, j.end
	count := end - start

	nodeBounds := bounds.Empty()
	for i := start; i < end; i++ {
		nodeBounds = nodeBounds.Union(st.tris[st.perm[i]].BBox)
	}

	if count <= leafRangeThreshold {
		st.emitLeaf(j.node, nodeBounds, start, end)
		return
	}

	axis, splitIdx, found := st.bestSAHSplit(start, end, count, nodeBounds)
	if !found {
		st.emitLeaf(j.node, nodeBounds, start, end)
		return
	}

	// Partition on the winning axis (re-sort; the sweep above may have
	// left the range sorted on a different axis).
	st.sortRange(start, end, axis)

	mid := start + splitIdx
	leftIdx := atomic.AddInt64(&st.nodeNext, 2) - 2
	rightIdx := leftIdx + 1

	st.nodes[j.node] = Node{
		BBox:  nodeBounds,
		Leaf:  false,
		Left:  int(leftIdx),
		Right: int(rightIdx),
		Axis:  axis,
	}

	st.enqueue(job{node: int(leftIdx), start: start, end: mid})
	st.enqueue(job{node: int(rightIdx), start: mid, end: end})
}

// emitLeaf writes a leaf node and advances the processed-triangle
// counter; the worker that raises it to the total flips the done flag
// and wakes every waiter.
func (st *buildState) emitLeaf(node int, bb bounds.Bounds, start, end int) {
	st.nodes[node] = Node{BBox: bb, Leaf: true, Start: start, End: end}

	newTotal := atomic.AddInt64(&st.leafed, int64(end-start))
	if newTotal >= st.total {
		st.mu.Lock()
		st.done = true
		st.mu.Unlock()
		st.cond.Broadcast()
	}
}

// enqueue pushes a job and wakes one waiting worker.
func (st *buildState) enqueue(j job) {
	st.mu.Lock()
	st.queue = append(st.queue, j)
	st.mu.Unlock()
	st.cond.Signal()
}

// sortRange sorts perm[start:end] by triangle centroid along axis.
func (st *buildState) sortRange(start, end, axis int) {
	sub := st.perm[start:end]
	sort.Slice(sub, func(i, j int) bool {
		return st.tris[sub[i]].Centroid.Axis(axis) < st.tris[sub[j]].Centroid.Axis(axis)
	})
}

// bestSAHSplit sweeps all three axes and returns the (axis, local split
// index) minimizing SAH cost, plus false if no split beats the leaf cost.
func (st *buildState) bestSAHSplit(start, end, count int, nodeBounds bounds.Bounds) (axis, splitIdx int, found bool) {
	nodeArea := nodeBounds.SurfaceArea()
	if nodeArea <= 0 {
		return 0, 0, false
	}

	bestCost := float64(count) // no-split (leaf) cost in leaf-ratio units
	bestAxis := -1
	bestSplit := 0

	leftBounds := make([]bounds.Bounds, count)
	rightBounds := make([]bounds.Bounds, count)

	for a := 0; a < 3; a++ {
		st.sortRange(start, end, a)
		sub := st.perm[start:end]

		// Forward sweep: leftBounds[k] = bounds of tris[0:k+1].
		running := bounds.Empty()
		for i := 0; i < count; i++ {
			running = running.Union(st.tris[sub[i]].BBox)
			leftBounds[i] = running
		}
		// Backward sweep: rightBounds[k] = bounds of tris[k:count].
		running = bounds.Empty()
		for i := count - 1; i >= 0; i-- {
			running = running.Union(st.tris[sub[i]].BBox)
			rightBounds[i] = running
		}

		for k := 1; k < count; k++ {
			saLeft := leftBounds[k-1].SurfaceArea()
			saRight := rightBounds[k].SurfaceArea()
			cost := 1 + (saLeft*float64(k)+saRight*float64(count-k))/nodeArea
			if cost < bestCost {
				bestCost = cost
				bestAxis = a
				bestSplit = k
			}
		}
	}

	if bestAxis == -1 {
		return 0, 0, false
	}
	return bestAxis, bestSplit, true
}
