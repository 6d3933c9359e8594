package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/groundbox/pkg/kernel"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	mesh, err := k.ToMesh(box, 0)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestRoundedBox(t *testing.T) {
	k := New()
	box := k.RoundedBox(60, 40, 20, 5)

	min, max := box.BoundingBox()
	const tol = 0.5
	if math.Abs((max[0]-min[0])-60) > tol {
		t.Errorf("X extent = %f, expected ~60", max[0]-min[0])
	}
	if math.Abs((max[2]-min[2])-20) > tol {
		t.Errorf("Z extent = %f, expected ~20", max[2]-min[2])
	}

	// The vertical edges are rounded, so a rounded box encloses strictly
	// less volume than the sharp box.
	sharp := k.Box(60, 40, 20)
	if vr, vs := k.Volume(box), k.Volume(sharp); vr >= vs {
		t.Errorf("rounded box volume %f should be less than sharp box volume %f", vr, vs)
	}

	t.Run("zero radius falls back to sharp box", func(t *testing.T) {
		b := k.RoundedBox(10, 10, 10, 0)
		v := k.Volume(b)
		if math.Abs(v-1000) > 50 {
			t.Errorf("volume = %f, expected ~1000", v)
		}
	})
}

func TestCylinder(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10)
	mesh, err := k.ToMesh(cyl, 0)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}

	min, max := cyl.BoundingBox()
	const tol = 0.5
	if math.Abs((max[2]-min[2])-50) > tol {
		t.Errorf("Z extent = %f, expected ~50", max[2]-min[2])
	}
	if math.Abs((max[0]-min[0])-20) > tol {
		t.Errorf("X extent = %f, expected ~20", max[0]-min[0])
	}
}

func TestCone(t *testing.T) {
	k := New()
	cone := k.Cone(30, 20, 5)

	// A truncated cone holds less than the bottom-radius cylinder and
	// more than the top-radius cylinder.
	vCone := k.Volume(cone)
	vBig := k.Volume(k.Cylinder(30, 20))
	vSmall := k.Volume(k.Cylinder(30, 5))
	if vCone >= vBig || vCone <= vSmall {
		t.Errorf("cone volume %f not between %f and %f", vCone, vSmall, vBig)
	}
}

func TestTube(t *testing.T) {
	k := New()
	tube := k.Tube(40, 15, 10)

	vTube := k.Volume(tube)
	vOuter := k.Volume(k.Cylinder(40, 15))
	vInner := k.Volume(k.Cylinder(40, 10))

	// Tube volume should be roughly the outer cylinder minus the bore.
	want := vOuter - vInner
	if math.Abs(vTube-want) > 0.15*want {
		t.Errorf("tube volume = %f, expected ~%f", vTube, want)
	}
}

func TestHexPrism(t *testing.T) {
	k := New()
	hex := k.HexPrism(10, 24)

	min, max := hex.BoundingBox()
	const tol = 0.5
	// Across-flats is the X extent when the flats face the X axis.
	if math.Abs((max[0]-min[0])-24) > tol {
		t.Errorf("X extent = %f, expected ~24 (across flats)", max[0]-min[0])
	}
	// Across-corners is 2/sqrt(3) times the across-flats width.
	wantY := 24 * 2 / math.Sqrt(3)
	if math.Abs((max[1]-min[1])-wantY) > tol {
		t.Errorf("Y extent = %f, expected ~%f (across corners)", max[1]-min[1], wantY)
	}
}

func TestExtrudeProfile(t *testing.T) {
	k := New()
	// Right triangle in XY extruded along Z.
	tri := k.ExtrudeProfile([][2]float64{{0, 0}, {40, 0}, {0, 30}}, 20)

	min, max := tri.BoundingBox()
	const tol = 0.5
	if math.Abs((max[2]-min[2])-20) > tol {
		t.Errorf("Z extent = %f, expected ~20", max[2]-min[2])
	}

	// Triangle prism volume: 0.5 * 40 * 30 * 20 = 12000.
	v := k.Volume(tri)
	if math.Abs(v-12000) > 0.1*12000 {
		t.Errorf("volume = %f, expected ~12000", v)
	}
}

func TestLoftRect(t *testing.T) {
	k := New()
	loft, err := k.LoftRect(40, 30, 20, 15, 2, 25)
	if err != nil {
		t.Fatalf("LoftRect failed: %v", err)
	}

	min, max := loft.BoundingBox()
	const tol = 1.0
	if math.Abs((max[2]-min[2])-25) > tol {
		t.Errorf("Z extent = %f, expected ~25", max[2]-min[2])
	}
	// The bottom section is the larger rectangle, so the overall
	// footprint matches it.
	if math.Abs((max[0]-min[0])-40) > tol {
		t.Errorf("X extent = %f, expected ~40", max[0]-min[0])
	}
}

func TestDifference(t *testing.T) {
	k := New()

	box := k.Box(100, 100, 100)
	boxMesh, err := k.ToMesh(box, 0)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}

	cyl := k.Cylinder(120, 20)
	diff := k.Difference(box, cyl)
	diffMesh, err := k.ToMesh(diff, 0)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
	// A box with a hole should have more triangles than a plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), 30, 0, 0)
	u := k.Union(box1, box2)
	mesh, err := k.ToMesh(u, 0)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
}

func TestIntersection(t *testing.T) {
	k := New()
	box1 := k.Box(100, 100, 100)
	box2 := k.Translate(k.Box(100, 100, 100), 50, 0, 0)
	inter := k.Intersection(box1, box2)
	mesh, err := k.ToMesh(inter, 0)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("intersection mesh is empty")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	// Translated box(10,10,10) by (100,200,300) should be centered at (100,200,300).
	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestRotateOrder(t *testing.T) {
	k := New()
	// A long box along X rotated (90, 0, 90): the X rotation spins the
	// box about its own long axis (no change in extent), then the Z
	// rotation swings the long axis onto Y.
	box := k.Box(100, 10, 10)
	rotated := k.Rotate(box, 90, 0, 90)
	min, max := rotated.BoundingBox()

	const tol = 1.0
	if yExtent := max[1] - min[1]; math.Abs(yExtent-100) > tol {
		t.Errorf("Y extent = %f, expected ~100 (X rotation applied first)", yExtent)
	}
}

func TestFillet(t *testing.T) {
	k := New()

	t.Run("rounds convex edges", func(t *testing.T) {
		box := k.Box(40, 40, 40)
		rounded, err := k.Fillet(box, 4)
		if err != nil {
			t.Fatalf("Fillet failed: %v", err)
		}
		// Rounding removes material at the corners.
		if vr, vs := k.Volume(rounded), k.Volume(box); vr >= vs {
			t.Errorf("filleted volume %f should be less than box volume %f", vr, vs)
		}
	})

	t.Run("zero radius is degenerate", func(t *testing.T) {
		box := k.Box(40, 40, 40)
		_, err := k.Fillet(box, 0)
		if !errors.Is(err, kernel.ErrDegenerate) {
			t.Fatalf("expected ErrDegenerate, got %v", err)
		}
	})

	t.Run("oversized radius is degenerate", func(t *testing.T) {
		box := k.Box(40, 40, 10)
		_, err := k.Fillet(box, 6)
		if !errors.Is(err, kernel.ErrDegenerate) {
			t.Fatalf("expected ErrDegenerate, got %v", err)
		}
	})
}

func TestVolume(t *testing.T) {
	k := New()
	tests := []struct {
		name  string
		solid kernel.Solid
		want  float64
	}{
		{"unit-ish box", k.Box(10, 10, 10), 1000},
		{"slab", k.Box(100, 50, 2), 10000},
		{"cylinder", k.Cylinder(20, 10), math.Pi * 100 * 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := k.Volume(tt.solid)
			if math.Abs(got-tt.want) > 0.1*tt.want {
				t.Errorf("Volume() = %f, want ~%f", got, tt.want)
			}
		})
	}
}

func TestFragments(t *testing.T) {
	k := New()

	t.Run("connected solid is one fragment", func(t *testing.T) {
		box := k.Box(50, 50, 50)
		frags := k.Fragments(box)
		if len(frags) != 1 {
			t.Fatalf("expected 1 fragment, got %d", len(frags))
		}
	})

	t.Run("disjoint union splits largest first", func(t *testing.T) {
		big := k.Box(40, 40, 40)
		small := k.Translate(k.Box(10, 10, 10), 100, 0, 0)
		u := k.Union(big, small)

		frags := k.Fragments(u)
		if len(frags) != 2 {
			t.Fatalf("expected 2 fragments, got %d", len(frags))
		}
		v0 := k.Volume(frags[0])
		v1 := k.Volume(frags[1])
		if v0 <= v1 {
			t.Errorf("fragments not sorted largest first: %f <= %f", v0, v1)
		}
		// The largest fragment is the big box.
		if math.Abs(v0-40*40*40) > 0.15*40*40*40 {
			t.Errorf("largest fragment volume = %f, expected ~%d", v0, 40*40*40)
		}
	})
}

func TestMeshCells(t *testing.T) {
	k := New()
	box := k.Box(100, 100, 100)
	s := unwrap(box)

	tests := []struct {
		name      string
		tolerance float64
		want      int
	}{
		{"zero tolerance uses default", 0, defaultMeshCells},
		{"coarse tolerance clamps low", 10, minMeshCells},
		{"fine tolerance clamps high", 0.01, maxMeshCells},
		{"mid tolerance", 0.5, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := meshCells(s, tt.tolerance); got != tt.want {
				t.Errorf("meshCells(%g) = %d, want %d", tt.tolerance, got, tt.want)
			}
		})
	}
}

func TestToMeshToleranceAffectsResolution(t *testing.T) {
	k := New()
	sphereish := k.Cylinder(20, 10)

	coarse, err := k.ToMesh(sphereish, 1.0)
	if err != nil {
		t.Fatalf("ToMesh(coarse) failed: %v", err)
	}
	fine, err := k.ToMesh(sphereish, 0.05)
	if err != nil {
		t.Fatalf("ToMesh(fine) failed: %v", err)
	}
	if fine.TriangleCount() <= coarse.TriangleCount() {
		t.Errorf("fine mesh (%d triangles) should exceed coarse mesh (%d triangles)",
			fine.TriangleCount(), coarse.TriangleCount())
	}
}
