// Package part builds the printable parts of the compost container
// assembly: the box, lid, scrapers, drain spout, seal ring, spout cap
// and the fit-test plate. Builders share one validated parameter set
// and the resolved drain frame; each returns a single connected solid
// in its own local frame unless noted.
package part

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/chazu/groundbox/pkg/kernel"
	"github.com/chazu/groundbox/pkg/params"
)

// Builder constructs parts against one parameter set. Builders are
// stateless between calls and safe to use from concurrent goroutines
// as long as the kernel is.
type Builder struct {
	Kernel kernel.Kernel
	Params *params.Set
	Frame  *params.Frame
	Log    *log.Logger
}

// NewBuilder validates the set, resolves the drain frame and returns a
// ready builder. A nil logger falls back to the package default.
func NewBuilder(k kernel.Kernel, set *params.Set, logger *log.Logger) (*Builder, error) {
	frame, err := params.Resolve(set)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Kernel: k, Params: set, Frame: frame, Log: logger}, nil
}

// rng returns a fresh generator seeded from the parameter set, so
// every part that draws a pin layout sees the same sequence.
func (b *Builder) rng() *rand.Rand {
	return rand.New(rand.NewSource(b.Params.Seed))
}

// liftToBed translates a solid so its lowest point sits on z=0.
func (b *Builder) liftToBed(s kernel.Solid) kernel.Solid {
	min, _ := s.BoundingBox()
	return b.Kernel.Translate(s, 0, 0, -min[2])
}
