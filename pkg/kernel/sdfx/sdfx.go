// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/chazu/groundbox/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

const (
	// defaultMeshCells controls marching cubes tessellation resolution
	// when no tolerance is given.
	defaultMeshCells = 200

	// minMeshCells / maxMeshCells clamp the tolerance-driven resolution.
	minMeshCells = 64
	maxMeshCells = 384

	// volumeCells is the sampling resolution along the longest axis for
	// volume estimation.
	volumeCells = 96

	// fragmentCells is the voxel resolution along the longest axis for
	// connected-component labeling.
	fragmentCells = 80
)

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions, centered on the origin.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// RoundedBox creates a box with its four vertical edges rounded to the
// given radius. It is built by extruding a rounded 2D rectangle so the
// top and bottom edges stay sharp.
func (k *SdfxKernel) RoundedBox(x, y, z, round float64) kernel.Solid {
	if round <= 0 {
		return k.Box(x, y, z)
	}
	profile := sdf.Box2D(v2.Vec{X: x, Y: y}, round)
	return wrap(sdf.Extrude3D(profile, z))
}

// Cylinder creates a cylinder with the given height and radius, centered
// on the origin with its axis along Z.
func (k *SdfxKernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Cone creates a truncated cone with the given height, bottom radius and
// top radius, centered on the origin with its axis along Z.
func (k *SdfxKernel) Cone(height, bottomRadius, topRadius float64) kernel.Solid {
	s, err := sdf.Cone3D(height, bottomRadius, topRadius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cone3D: %v", err))
	}
	return wrap(s)
}

// Tube creates a hollow cylinder with the given height and outer/inner
// radii, centered on the origin with its axis along Z.
func (k *SdfxKernel) Tube(height, outerRadius, innerRadius float64) kernel.Solid {
	outer, err := sdf.Cylinder3D(height, outerRadius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	// Oversize the bore slightly so the difference cuts cleanly through
	// both faces.
	inner, err := sdf.Cylinder3D(height*1.01, innerRadius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(sdf.Difference3D(outer, inner))
}

// HexPrism creates a hexagonal prism with the given height and
// across-flats width, centered on the origin with its axis along Z.
func (k *SdfxKernel) HexPrism(height, acrossFlats float64) kernel.Solid {
	// Circumradius from the across-flats dimension. Vertices are placed
	// at 30 degree offsets so the flats face the X axis.
	r := acrossFlats / math.Sqrt(3)
	points := make([]v2.Vec, 6)
	for i := 0; i < 6; i++ {
		a := (30.0 + float64(i)*60.0) * math.Pi / 180.0
		points[i] = v2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	profile, err := sdf.Polygon2D(points)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Polygon2D: %v", err))
	}
	return wrap(sdf.Extrude3D(profile, height))
}

// ExtrudeProfile extrudes a closed 2D polygon along Z. The profile lies
// in the XY plane and the extrusion is centered, spanning -height/2 to
// +height/2.
func (k *SdfxKernel) ExtrudeProfile(points [][2]float64, height float64) kernel.Solid {
	pts := make([]v2.Vec, len(points))
	for i, p := range points {
		pts[i] = v2.Vec{X: p[0], Y: p[1]}
	}
	profile, err := sdf.Polygon2D(pts)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Polygon2D: %v", err))
	}
	return wrap(sdf.Extrude3D(profile, height))
}

// LoftRect lofts between two centered rounded rectangles, the first at
// the bottom and the second at the top, over the given height. The
// result is centered on the origin.
func (k *SdfxKernel) LoftRect(w0, d0, w1, d1, round, height float64) (kernel.Solid, error) {
	bottom := sdf.Box2D(v2.Vec{X: w0, Y: d0}, round)
	top := sdf.Box2D(v2.Vec{X: w1, Y: d1}, round)
	s, err := sdf.Loft3D(bottom, top, height, 0)
	if err != nil {
		return nil, fmt.Errorf("loft: %w", err)
	}
	return wrap(s), nil
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// applied in X, Y, Z order.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Fillet rounds the edges of a solid by eroding and re-dilating the
// surface with the given radius. Returns kernel.ErrDegenerate when the
// radius is non-positive or too large for the solid to survive erosion.
func (k *SdfxKernel) Fillet(s kernel.Solid, radius float64) (kernel.Solid, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("fillet radius %g: %w", radius, kernel.ErrDegenerate)
	}
	min, max := s.BoundingBox()
	minDim := math.Min(max[0]-min[0], math.Min(max[1]-min[1], max[2]-min[2]))
	if 2*radius >= minDim {
		return nil, fmt.Errorf("fillet radius %g exceeds half the minimum extent %g: %w",
			radius, minDim/2, kernel.ErrDegenerate)
	}
	eroded := sdf.Offset3D(unwrap(s), -radius)
	return wrap(sdf.Offset3D(eroded, radius)), nil
}

// Volume estimates the enclosed volume by sampling the distance field on
// a uniform grid. The estimate is deterministic for a given solid.
func (k *SdfxKernel) Volume(s kernel.Solid) float64 {
	sdf3 := unwrap(s)
	bb := sdf3.BoundingBox()
	size := bb.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim <= 0 {
		return 0
	}
	step := maxDim / volumeCells
	nx := int(math.Ceil(size.X/step)) + 1
	ny := int(math.Ceil(size.Y/step)) + 1
	nz := int(math.Ceil(size.Z/step)) + 1

	inside := 0
	for ix := 0; ix < nx; ix++ {
		x := bb.Min.X + (float64(ix)+0.5)*step
		for iy := 0; iy < ny; iy++ {
			y := bb.Min.Y + (float64(iy)+0.5)*step
			for iz := 0; iz < nz; iz++ {
				z := bb.Min.Z + (float64(iz)+0.5)*step
				if sdf3.Evaluate(v3.Vec{X: x, Y: y, Z: z}) <= 0 {
					inside++
				}
			}
		}
	}
	return float64(inside) * step * step * step
}

// Fragments splits a solid into its connected components, largest first.
// Components are found by labeling inside voxels on a uniform grid and
// clipping the solid against each component's padded bounding box. A
// connected solid yields a single fragment.
func (k *SdfxKernel) Fragments(s kernel.Solid) []kernel.Solid {
	sdf3 := unwrap(s)
	bb := sdf3.BoundingBox()
	size := bb.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim <= 0 {
		return []kernel.Solid{s}
	}
	step := maxDim / fragmentCells
	nx := int(math.Ceil(size.X/step)) + 1
	ny := int(math.Ceil(size.Y/step)) + 1
	nz := int(math.Ceil(size.Z/step)) + 1

	idx := func(ix, iy, iz int) int { return (ix*ny+iy)*nz + iz }

	inside := make([]bool, nx*ny*nz)
	for ix := 0; ix < nx; ix++ {
		x := bb.Min.X + (float64(ix)+0.5)*step
		for iy := 0; iy < ny; iy++ {
			y := bb.Min.Y + (float64(iy)+0.5)*step
			for iz := 0; iz < nz; iz++ {
				z := bb.Min.Z + (float64(iz)+0.5)*step
				if sdf3.Evaluate(v3.Vec{X: x, Y: y, Z: z}) <= 0 {
					inside[idx(ix, iy, iz)] = true
				}
			}
		}
	}

	type component struct {
		count            int
		minX, minY, minZ int
		maxX, maxY, maxZ int
	}

	visited := make([]bool, len(inside))
	var components []component

	for startX := 0; startX < nx; startX++ {
		for startY := 0; startY < ny; startY++ {
			for startZ := 0; startZ < nz; startZ++ {
				start := idx(startX, startY, startZ)
				if !inside[start] || visited[start] {
					continue
				}
				// Flood fill over the 6-connected neighborhood.
				comp := component{
					minX: startX, minY: startY, minZ: startZ,
					maxX: startX, maxY: startY, maxZ: startZ,
				}
				queue := [][3]int{{startX, startY, startZ}}
				visited[start] = true
				for len(queue) > 0 {
					c := queue[len(queue)-1]
					queue = queue[:len(queue)-1]
					comp.count++
					if c[0] < comp.minX {
						comp.minX = c[0]
					}
					if c[1] < comp.minY {
						comp.minY = c[1]
					}
					if c[2] < comp.minZ {
						comp.minZ = c[2]
					}
					if c[0] > comp.maxX {
						comp.maxX = c[0]
					}
					if c[1] > comp.maxY {
						comp.maxY = c[1]
					}
					if c[2] > comp.maxZ {
						comp.maxZ = c[2]
					}
					for _, d := range [][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
						n := [3]int{c[0] + d[0], c[1] + d[1], c[2] + d[2]}
						if n[0] < 0 || n[0] >= nx || n[1] < 0 || n[1] >= ny || n[2] < 0 || n[2] >= nz {
							continue
						}
						ni := idx(n[0], n[1], n[2])
						if inside[ni] && !visited[ni] {
							visited[ni] = true
							queue = append(queue, n)
						}
					}
				}
				components = append(components, comp)
			}
		}
	}

	if len(components) <= 1 {
		return []kernel.Solid{s}
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].count > components[j].count
	})

	// Pad each component box by one cell so the clip does not shave the
	// fragment's surface.
	pad := step * 1.5
	fragments := make([]kernel.Solid, 0, len(components))
	for _, c := range components {
		lo := v3.Vec{
			X: bb.Min.X + float64(c.minX)*step - pad,
			Y: bb.Min.Y + float64(c.minY)*step - pad,
			Z: bb.Min.Z + float64(c.minZ)*step - pad,
		}
		hi := v3.Vec{
			X: bb.Min.X + float64(c.maxX+1)*step + pad,
			Y: bb.Min.Y + float64(c.maxY+1)*step + pad,
			Z: bb.Min.Z + float64(c.maxZ+1)*step + pad,
		}
		box, err := sdf.Box3D(hi.Sub(lo), 0)
		if err != nil {
			continue
		}
		center := lo.Add(hi).MulScalar(0.5)
		clip := sdf.Transform3D(box, sdf.Translate3d(center))
		fragments = append(fragments, wrap(sdf.Intersect3D(sdf3, clip)))
	}
	return fragments
}

// meshCells derives a marching cubes resolution from the requested
// surface tolerance and the solid's extent.
func meshCells(s sdf.SDF3, tolerance float64) int {
	if tolerance <= 0 {
		return defaultMeshCells
	}
	bb := s.BoundingBox()
	size := bb.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	cells := int(math.Ceil(maxDim / tolerance))
	if cells < minMeshCells {
		cells = minMeshCells
	}
	if cells > maxMeshCells {
		cells = maxMeshCells
	}
	return cells
}

// ToMesh converts a solid to a triangle mesh using marching cubes. The
// tolerance sets the target surface deviation; pass 0 for the default
// resolution.
func (k *SdfxKernel) ToMesh(s kernel.Solid, tolerance float64) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(meshCells(sdf3, tolerance))
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// Save3MF renders a solid and writes it to a 3MF file at the given path.
// The underlying writer logs failures instead of returning them, so the
// output file is checked for existence afterwards.
func (k *SdfxKernel) Save3MF(s kernel.Solid, tolerance float64, path string) error {
	sdf3 := unwrap(s)
	renderer := render.NewMarchingCubesUniform(meshCells(sdf3, tolerance))
	render.To3MF(sdf3, path, renderer)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("3mf output %s was not written: %w", path, err)
	}
	return nil
}
