package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

func TestIntersectRecoversBarycentrics(t *testing.T) {
	p1 := vec3.New(0, 0, 0)
	p2 := vec3.New(1, 0, 0)
	p3 := vec3.New(0, 1, 0)
	tri := NewTriangle(p1, p2, p3, 0, 0)

	random := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		u := random.Float64()
		v := random.Float64() * (1 - u)

		target := vec3.Barycentric(p1, p2, p3, u, v)
		origin := vec3.New(0.3, 0.3, -5)
		dir := target.Sub(origin).Normalize()

		gotT, gotU, gotV, hit := tri.Intersect(origin, dir, 0, 1e9)
		if !hit {
			t.Fatalf("expected hit for u=%f v=%f", u, v)
		}
		if math.Abs(gotU-u) > 1e-5 || math.Abs(gotV-v) > 1e-5 {
			t.Errorf("barycentrics mismatch: got (%f,%f) want (%f,%f)", gotU, gotV, u, v)
		}

		hitPoint := origin.Add(dir.Mul(gotT))
		if hitPoint.Sub(target).Length() > 1e-4 {
			t.Errorf("hit point %v does not match target %v", hitPoint, target)
		}
	}
}

func TestIntersectRejectsOutsideSimplex(t *testing.T) {
	tri := NewTriangle(vec3.New(0, 0, 0), vec3.New(1, 0, 0), vec3.New(0, 1, 0), 0, 0)
	origin := vec3.New(2, 2, -5)
	dir := vec3.New(0, 0, 1)
	if _, _, _, hit := tri.Intersect(origin, dir, 0, 1e9); hit {
		t.Error("expected miss for ray outside the triangle's simplex")
	}
}

func TestIntersectRejectsParallelRay(t *testing.T) {
	tri := NewTriangle(vec3.New(0, 0, 0), vec3.New(1, 0, 0), vec3.New(0, 1, 0), 0, 0)
	origin := vec3.New(0.1, 0.1, 0)
	dir := vec3.New(1, 0, 0) // lies in the triangle's plane
	if _, _, _, hit := tri.Intersect(origin, dir, 0, 1e9); hit {
		t.Error("expected miss for ray parallel to the triangle's plane")
	}
}
