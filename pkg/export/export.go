// Package export renders solids to printable mesh files. Parts arrive
// in their local frames; the exporter drops every solid onto the bed
// (min z = 0) before meshing, which is what slicers expect.
package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/chazu/groundbox/pkg/kernel"
)

// ErrExport reports a failure to render or write an output file.
var ErrExport = errors.New("export failed")

// ThreeMFSaver is implemented by kernels that write 3MF natively.
type ThreeMFSaver interface {
	Save3MF(s kernel.Solid, tolerance float64, path string) error
}

// Exporter writes meshes for one output directory and tolerance.
type Exporter struct {
	Kernel    kernel.Kernel
	Dir       string
	Tolerance float64
	Log       *log.Logger
}

// New returns an exporter writing into dir. A tolerance of zero uses
// the kernel's default mesh resolution; a nil logger falls back to the
// package default.
func New(k kernel.Kernel, dir string, tolerance float64, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{Kernel: k, Dir: dir, Tolerance: tolerance, Log: logger}
}

// onBed drops the solid so its lowest point sits at z=0.
func (e *Exporter) onBed(s kernel.Solid) kernel.Solid {
	min, _ := s.BoundingBox()
	return e.Kernel.Translate(s, 0, 0, -min[2])
}

// STL renders a solid and writes <name>.stl, returning the full path.
func (e *Exporter) STL(name string, s kernel.Solid) (string, error) {
	mesh, err := e.Kernel.ToMesh(e.onBed(s), e.Tolerance)
	if err != nil {
		return "", fmt.Errorf("%w: meshing %s: %v", ErrExport, name, err)
	}
	mesh.PartName = name

	path, err := e.outputPath(name + ".stl")
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteSTL(w, mesh); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrExport, path, err)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	e.Log.Info("wrote mesh", "path", path, "triangles", mesh.TriangleCount())
	return path, nil
}

// ThreeMF renders a solid and writes <name>.3mf. Only kernels that
// implement ThreeMFSaver support it.
func (e *Exporter) ThreeMF(name string, s kernel.Solid) (string, error) {
	saver, ok := e.Kernel.(ThreeMFSaver)
	if !ok {
		return "", fmt.Errorf("%w: kernel has no 3mf writer", ErrExport)
	}
	path, err := e.outputPath(name + ".3mf")
	if err != nil {
		return "", err
	}
	if err := saver.Save3MF(e.onBed(s), e.Tolerance, path); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrExport, path, err)
	}
	e.Log.Info("wrote mesh", "path", path)
	return path, nil
}

func (e *Exporter) outputPath(file string) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	return filepath.Join(e.Dir, file), nil
}

// WriteSTL writes a mesh in binary STL: 80-byte header, uint32 triangle
// count, then 50 bytes per triangle (normal, three vertices, attribute
// word), all little-endian.
func WriteSTL(w io.Writer, mesh *kernel.Mesh) error {
	var header [80]byte
	copy(header[:], mesh.PartName)
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	count := uint32(mesh.TriangleCount())
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return err
	}

	var tri [12]float32
	for i := 0; i < int(count); i++ {
		n := mesh.Normal(i)
		a, b, c := mesh.Triangle(i)
		copy(tri[0:3], n[:])
		copy(tri[3:6], a[:])
		copy(tri[6:9], b[:])
		copy(tri[9:12], c[:])
		if err := binary.Write(w, binary.LittleEndian, tri); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return nil
}
