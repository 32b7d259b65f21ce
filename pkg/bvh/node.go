// Package bvh implements the SAH binary bounding-volume hierarchy: a
// concurrent worker-pool builder (spec §4.6, §5) and an iterative,
// explicit-stack single-ray traversal (spec §4.7).
package bvh

import (
	"github.com/tholcomb/raydiant/pkg/bounds"
	"github.com/tholcomb/raydiant/pkg/geometry"
)

// Node is one entry in the flat BVH node array. A leaf node covers
// [Start, End) of the triangle-permutation array; an internal node
// points at its two children by node index.
type Node struct {
	BBox  bounds.Bounds
	Leaf  bool
	Start int // leaf: inclusive start into Perm
	End   int // leaf: exclusive end into Perm
	Left  int // internal: left child node index
	Right int // internal: right child node index
	Axis  int // internal: split axis (0,1,2); informational
}

// BVH is the result of a build: a flat node array plus a permutation of
// the input triangle slice. Triangles is never reordered; Perm records
// which original triangle each leaf range refers to.
type BVH struct {
	Nodes     []Node
	Perm      []int32
	Triangles []geometry.Triangle
}

// NumTriangles returns the number of triangles the BVH was built over.
func (b *BVH) NumTriangles() int {
	return len(b.Triangles)
}
