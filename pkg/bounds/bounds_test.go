package bounds

import (
	"math/rand"
	"testing"

	"github.com/tholcomb/raydiant/pkg/vec3"
)

func TestUnionCommutative(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		b := Empty()
		p := vec3.New(random.Float64(), random.Float64(), random.Float64())
		q := vec3.New(random.Float64(), random.Float64(), random.Float64())

		a := b.UnionPoint(p).UnionPoint(q)
		c := b.UnionPoint(q).UnionPoint(p)

		if a != c {
			t.Fatalf("union(union(b,p),q) != union(union(b,q),p): %v vs %v", a, c)
		}
	}
}

func TestHitSlab(t *testing.T) {
	box := New(vec3.New(-1, -1, -1), vec3.New(1, 1, 1))

	cases := []struct {
		name    string
		origin  vec3.Vec3
		dir     vec3.Vec3
		wantHit bool
	}{
		{"through center", vec3.New(0, 0, -5), vec3.New(0, 0, 1), true},
		{"miss to the side", vec3.New(5, 5, -5), vec3.New(0, 0, 1), false},
		{"zero dir component, origin inside slab", vec3.New(0, 0, -5), vec3.New(0, 0.1, 1), true},
		{"zero dir component, origin outside slab", vec3.New(5, 0, -5), vec3.New(0, 1, 1), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := box.Hit(c.origin, c.dir, 0, 1e9)
			if got != c.wantHit {
				t.Errorf("Hit() = %v, want %v", got, c.wantHit)
			}
		})
	}
}

func TestSurfaceAreaKnownBox(t *testing.T) {
	box := New(vec3.New(0, 0, 0), vec3.New(2, 3, 4))
	want := 2.0 * (2*3 + 3*4 + 4*2)
	if got := box.SurfaceArea(); got != want {
		t.Errorf("SurfaceArea() = %f, want %f", got, want)
	}
}
