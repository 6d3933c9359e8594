// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx) provide solid modeling and boolean operations
// behind this interface. The kernel abstraction allows swapping backends
// without changing the part builders.
package kernel

import "errors"

// ErrDegenerate is returned when the kernel cannot perform an optional
// shaping operation (fillet, loft) on the current geometry. Builders
// treat it as recoverable: skip the feature and continue with the
// unmodified solid.
var ErrDegenerate = errors.New("degenerate geometry")

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation. Solids are
// immutable by convention: every operation produces a new Solid and
// never modifies its inputs.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
//
// Conventions: all primitives are centered on the origin with their
// axis (where they have one) along Z. Profile extrusions are centered
// on the XY plane and extend height/2 in both Z directions. Placement
// is done with Translate/Rotate after construction.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	RoundedBox(x, y, z, round float64) Solid // vertical edges rounded, top/bottom sharp
	Cylinder(height, radius float64) Solid
	Cone(height, bottomRadius, topRadius float64) Solid
	Tube(height, outerRadius, innerRadius float64) Solid
	HexPrism(height, acrossFlats float64) Solid

	// Profile operations
	ExtrudeProfile(points [][2]float64, height float64) Solid
	LoftRect(w0, d0, w1, d1, round, height float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees, applied X then Y then Z

	// Shaping. Fillet rounds the solid's convex edges; it reports
	// ErrDegenerate when the radius cannot be applied to the geometry.
	Fillet(s Solid, radius float64) (Solid, error)

	// Queries
	Volume(s Solid) float64
	Fragments(s Solid) []Solid // connected components, largest first

	// Mesh output. Tolerance is the maximum chord deviation between
	// the mesh and the exact surface.
	ToMesh(s Solid, tolerance float64) (*Mesh, error)
}
