package bvh

import (
	"math/rand"
	"testing"

	"github.com/tholcomb/raydiant/pkg/geometry"
	"github.com/tholcomb/raydiant/pkg/vec3"
)

func randomTriangles(n int, seed int64) []geometry.Triangle {
	random := rand.New(rand.NewSource(seed))
	tris := make([]geometry.Triangle, n)
	for i := 0; i < n; i++ {
		center := vec3.New(random.Float64(), random.Float64(), random.Float64())
		p0 := center
		p1 := center.Add(vec3.New(random.Float64()*0.1, 0, 0))
		p2 := center.Add(vec3.New(0, random.Float64()*0.1, 0))
		tris[i] = geometry.NewTriangle(p0, p1, p2, 0, i)
	}
	return tris
}

func TestBuildLeavesPartitionTriangleRange(t *testing.T) {
	tris := randomTriangles(500, 1)
	tree := Build(tris, 4)

	covered := make([]bool, len(tris))
	var walk func(idx int)
	walk = func(idx int) {
		node := tree.Nodes[idx]
		if node.Leaf {
			for i := node.Start; i < node.End; i++ {
				triIdx := tree.Perm[i]
				if covered[triIdx] {
					t.Fatalf("triangle %d covered by more than one leaf", triIdx)
				}
				covered[triIdx] = true
				// Leaf bounds must contain the triangle's own bounds.
				tb := tris[triIdx].BBox
				if tb.Min.X < node.BBox.Min.X-1e-9 || tb.Max.X > node.BBox.Max.X+1e-9 {
					t.Errorf("triangle %d bounds not contained in leaf bounds", triIdx)
				}
			}
			return
		}
		// Internal node bounds must enclose both children's bounds.
		left := tree.Nodes[node.Left].BBox
		right := tree.Nodes[node.Right].BBox
		if left.Min.X < node.BBox.Min.X-1e-9 || left.Max.X > node.BBox.Max.X+1e-9 {
			t.Errorf("left child not enclosed by parent bounds")
		}
		if right.Min.X < node.BBox.Min.X-1e-9 || right.Max.X > node.BBox.Max.X+1e-9 {
			t.Errorf("right child not enclosed by parent bounds")
		}
		walk(node.Left)
		walk(node.Right)
	}
	walk(0)

	for i, c := range covered {
		if !c {
			t.Errorf("triangle %d not covered by any leaf", i)
		}
	}

	if len(tree.Nodes) > 2*len(tris)-1 {
		t.Errorf("node count %d exceeds 2n-1 = %d", len(tree.Nodes), 2*len(tris)-1)
	}
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil, 4)
	if len(tree.Nodes) != 0 {
		t.Errorf("expected no nodes for empty input, got %d", len(tree.Nodes))
	}
}

func TestBuildSingleTriangle(t *testing.T) {
	tris := randomTriangles(1, 2)
	tree := Build(tris, 4)
	if len(tree.Nodes) != 1 || !tree.Nodes[0].Leaf {
		t.Fatalf("expected a single leaf node, got %+v", tree.Nodes)
	}
}

func TestBuildCoversAllTrianglesAcrossWorkerCounts(t *testing.T) {
	tris := randomTriangles(2000, 5)

	tree1 := Build(tris, 1)
	tree8 := Build(tris, 8)

	// Triangle count and coverage must match regardless of worker count
	// (SAH decisions are order-independent; see spec §4.6).
	if len(tree1.Triangles) != len(tree8.Triangles) {
		t.Fatalf("triangle count differs between worker counts")
	}

	count := func(tree *BVH) int {
		total := 0
		for _, n := range tree.Nodes {
			if n.Leaf {
				total += n.End - n.Start
			}
		}
		return total
	}
	if count(tree1) != len(tris) || count(tree8) != len(tris) {
		t.Errorf("leaf coverage mismatch: single=%d multi=%d want=%d", count(tree1), count(tree8), len(tris))
	}
}
