package bvh

import "github.com/tholcomb/raydiant/pkg/vec3"

// maxStackDepth is the explicit traversal stack's fixed depth — ample for
// SAH trees on real meshes (spec §4.7).
const maxStackDepth = 99

// Hit is the nearest ray-triangle intersection found by traversal.
type Hit struct {
	T           float64
	TriangleIdx int // index into BVH.Triangles
	U, V        float64
}

// Intersect performs a single-ray traversal with an explicit integer
// stack, iteratively popping, bounds-testing, and (for leaves) testing
// triangles while shrinking tMax on each closer hit. Reading from the
// tree is lock-free and safe for concurrent callers: the structure is
// immutable once Build returns.
func (b *BVH) Intersect(origin, direction vec3.Vec3, tMin, tMax float64) (Hit, bool) {
	if len(b.Nodes) == 0 {
		return Hit{}, false
	}

	var stack [maxStackDepth]int
	sp := 0
	stack[sp] = 0
	sp++

	found := false
	var best Hit

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := &b.Nodes[nodeIdx]

		if !node.BBox.Hit(origin, direction, tMin, tMax) {
			continue
		}

		if node.Leaf {
			for i := node.Start; i < node.End; i++ {
				triIdx := b.Perm[i]
				tri := &b.Triangles[triIdx]
				if t, u, v, hit := tri.Intersect(origin, direction, tMin, tMax); hit {
					tMax = t
					found = true
					best = Hit{T: t, TriangleIdx: int(triIdx), U: u, V: v}
				}
			}
			continue
		}

		stack[sp] = node.Left
		sp++
		stack[sp] = node.Right
		sp++
	}

	return best, found
}
