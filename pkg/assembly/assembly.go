// Package assembly composes installed views of the container: every
// part placed in its mounted position, plus the step-by-step animation
// frames showing the assembly order. Parts come from the part builders
// in their local frames; this package owns the placement math.
package assembly

import (
	"fmt"

	"github.com/chazu/groundbox/pkg/kernel"
	"github.com/chazu/groundbox/pkg/part"
)

// Placement is one named part in assembly coordinates: the box resting
// on the ground plane with its bottom face at z=0.
type Placement struct {
	Name  string
	Solid kernel.Solid
}

// Assembler places parts built by one builder.
type Assembler struct {
	b *part.Builder
}

func New(b *part.Builder) *Assembler {
	return &Assembler{b: b}
}

// drainCenter returns the drain axis center in assembly coordinates.
func (a *Assembler) drainCenter() (x, y, z float64) {
	f, p := a.b.Frame, a.b.Params
	return f.DrainX, f.DrainY, p.BoxHeight/2 + f.DrainZ
}

// install carries a part from the spout's local frame (wall contact at
// z=0, axis +Z inward) onto the drain axis, backed off along the wall
// normal by the given distance.
func (a *Assembler) install(s kernel.Solid, backoff float64) kernel.Solid {
	k, f := a.b.Kernel, a.b.Frame
	s = k.Rotate(s, f.InstallRotation[0], f.InstallRotation[1], f.InstallRotation[2])
	x, y, z := a.drainCenter()
	return k.Translate(s, x+f.Outward[0]*backoff, y+f.Outward[1]*backoff, z)
}

// lidSeat is the z of the lid plate center when the plug is fully
// inserted: plate underside resting on the box rim.
func (a *Assembler) lidSeat() float64 {
	p := a.b.Params
	return p.BoxHeight + p.LidTopThickness/2
}

// socketFloor is the z of the lid socket mouth with the lid seated,
// which is where the scraper base top lands when locked.
func (a *Assembler) socketFloor() float64 {
	p := a.b.Params
	return a.lidSeat() - p.LidTopThickness/2 - p.RecessDepth + p.RecessOverlap
}

// Placements builds the full assembly: box on the ground plane, lid
// with integrated scraper seated, spout and seal ring on the drain, and
// the attachable scraper standing beside the box.
func (a *Assembler) Placements() ([]Placement, error) {
	k, p := a.b.Kernel, a.b.Params

	box, err := a.b.Box()
	if err != nil {
		return nil, fmt.Errorf("assembly box: %w", err)
	}
	box = k.Translate(box, 0, 0, p.BoxHeight/2)

	lid, err := a.b.Lid(true)
	if err != nil {
		return nil, fmt.Errorf("assembly lid: %w", err)
	}
	lid = k.Translate(lid, 0, 0, a.lidSeat())

	spout, err := a.b.Spout()
	if err != nil {
		return nil, fmt.Errorf("assembly spout: %w", err)
	}
	ring, err := a.b.SealRing()
	if err != nil {
		return nil, fmt.Errorf("assembly seal ring: %w", err)
	}

	scraper, err := a.b.Scraper(part.ScraperPrintedPins)
	if err != nil {
		return nil, fmt.Errorf("assembly scraper: %w", err)
	}
	// Standing on its pin tips beside the box.
	sMin, _ := scraper.BoundingBox()
	scraper = k.Translate(scraper, p.BoxLength/2+50, 0, -sMin[2])

	return []Placement{
		{Name: "box", Solid: box},
		{Name: "lid", Solid: lid},
		{Name: "spout", Solid: a.install(spout, 0)},
		{Name: "seal_ring", Solid: a.install(ring, 0)},
		{Name: "scraper", Solid: scraper},
	}, nil
}

// Compose unions placements into a single solid for export.
func Compose(k kernel.Kernel, placements []Placement) kernel.Solid {
	var s kernel.Solid
	for _, pl := range placements {
		if s == nil {
			s = pl.Solid
		} else {
			s = k.Union(s, pl.Solid)
		}
	}
	return s
}

// Assembly builds and composes the full installed view.
func (a *Assembler) Assembly() (kernel.Solid, error) {
	placements, err := a.Placements()
	if err != nil {
		return nil, err
	}
	return Compose(a.b.Kernel, placements), nil
}
