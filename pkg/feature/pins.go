package feature

import (
	"math"
	"math/rand"

	"github.com/chazu/groundbox/pkg/kernel"
)

// PinField places piercing pins semi-randomly in a ring on the scraper
// base: evenly spaced base angles jittered by up to Variance degrees,
// radii drawn uniformly from [MinRadius, MaxRadius]. The caller owns
// the *rand.Rand; seeding it identically reproduces the exact layout,
// which keeps the lid-integrated and standalone scrapers in agreement.
type PinField struct {
	Count     int
	MinRadius float64
	MaxRadius float64
	Variance  float64
}

// PinPlacement is one resolved pin position.
type PinPlacement struct {
	Radius float64
	Angle  float64 // degrees
	X, Y   float64
}

// Layout draws the pin positions. Each pin consumes exactly two draws
// (radius, then angle jitter) so layouts stay aligned across variants
// that share a seed.
func (p PinField) Layout(rng *rand.Rand) []PinPlacement {
	placements := make([]PinPlacement, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		radius := p.MinRadius + rng.Float64()*(p.MaxRadius-p.MinRadius)
		base := float64(i) / float64(p.Count) * 360
		angle := base + (rng.Float64()*2-1)*p.Variance

		rad := angle * math.Pi / 180
		placements = append(placements, PinPlacement{
			Radius: radius,
			Angle:  angle,
			X:      radius * math.Cos(rad),
			Y:      radius * math.Sin(rad),
		})
	}
	return placements
}

// SolidPins unions printed pins with coned tips onto a base. Local
// frame: base underside at z=0, pins extend downward.
func SolidPins(k kernel.Kernel, base kernel.Solid, layout []PinPlacement, diameter, length float64) kernel.Solid {
	for _, p := range layout {
		pin := k.Cylinder(length, diameter/2)
		pin = k.Translate(pin, p.X, p.Y, -length/2)
		base = k.Union(base, pin)

		// Tip tapers from the pin diameter to a blunt point over one
		// pin diameter of height.
		tip := k.Cone(diameter, 0.5, diameter/2)
		tip = k.Translate(tip, p.X, p.Y, -length-diameter/2)
		base = k.Union(base, tip)
	}
	return base
}

// NailInserts describes the press-fit metal nail holes cut instead of
// printed pins: a head socket, a taper, and a tight through hole.
type NailInserts struct {
	HoleDiameter   float64
	SocketDiameter float64
	SocketDepth    float64
	TaperLength    float64
}

// Cut removes the nail insert cavities from a base of the given total
// thickness. Local frame: base top at z=0, thickness extends downward.
func (n NailInserts) Cut(k kernel.Kernel, base kernel.Solid, layout []PinPlacement, thickness float64) kernel.Solid {
	for _, p := range layout {
		socket := k.Cylinder(n.SocketDepth, n.SocketDiameter/2)
		socket = k.Translate(socket, p.X, p.Y, -n.SocketDepth/2)
		base = k.Difference(base, socket)

		// Taper eases the nail from the socket into the friction hole.
		taper := k.Cone(n.TaperLength, n.HoleDiameter/2, n.SocketDiameter/2)
		taper = k.Translate(taper, p.X, p.Y, -n.SocketDepth-n.TaperLength/2)
		base = k.Difference(base, taper)

		// Through hole, oversized axially so it clears the bottom face.
		holeLen := thickness - n.SocketDepth - n.TaperLength + 2
		hole := k.Cylinder(holeLen, n.HoleDiameter/2)
		hole = k.Translate(hole, p.X, p.Y, -n.SocketDepth-n.TaperLength-holeLen/2)
		base = k.Difference(base, hole)
	}
	return base
}
