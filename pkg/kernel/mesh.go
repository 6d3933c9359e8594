package kernel

// Mesh is a triangle mesh suitable for export or rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which generated part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangle returns the three vertex positions of triangle i.
// The vertices are looked up through the index array.
func (m *Mesh) Triangle(i int) (a, b, c [3]float32) {
	va := m.Indices[i*3] * 3
	vb := m.Indices[i*3+1] * 3
	vc := m.Indices[i*3+2] * 3
	a = [3]float32{m.Vertices[va], m.Vertices[va+1], m.Vertices[va+2]}
	b = [3]float32{m.Vertices[vb], m.Vertices[vb+1], m.Vertices[vb+2]}
	c = [3]float32{m.Vertices[vc], m.Vertices[vc+1], m.Vertices[vc+2]}
	return a, b, c
}

// Normal returns the stored per-face normal of triangle i.
func (m *Mesh) Normal(i int) [3]float32 {
	v := m.Indices[i*3] * 3
	return [3]float32{m.Normals[v], m.Normals[v+1], m.Normals[v+2]}
}
