// Package feature builds the reusable geometric features shared by the
// part builders: discretized threads, bayonet couplings, seeded pin
// fields and lofted profile stacks. Every feature works in a local
// frame (axis along +Z, base at z=0) and is placed by the caller.
package feature

import (
	"github.com/chazu/groundbox/pkg/kernel"
)

// Thread describes a discretized thread: a helix approximated by short
// straight segments, one groove or ridge block per segment. The print
// orientation tolerates the stepped profile and the coupling only needs
// a few turns of engagement.
type Thread struct {
	MajorDiameter   float64
	Pitch           float64
	Length          float64
	SegmentsPerTurn int

	// GuardDivisor sets the unthreaded band at the far end: segments at
	// z >= Length - Pitch/GuardDivisor are skipped so the thread never
	// breaks through the end face.
	GuardDivisor float64
}

// ThreadStep is one segment of the discretized helix.
type ThreadStep struct {
	Angle float64 // degrees around the axis
	Z     float64 // height along the axis
}

// Steps enumerates the helix segments. A pitch of at least the thread
// length yields no steps: the result is an unthreaded bore or shaft,
// not an error.
func (t Thread) Steps() []ThreadStep {
	turns := int(t.Length / t.Pitch)
	if turns <= 0 || t.SegmentsPerTurn <= 0 {
		return nil
	}
	guard := t.Length - t.Pitch/t.GuardDivisor

	steps := make([]ThreadStep, 0, turns*t.SegmentsPerTurn)
	for turn := 0; turn < turns; turn++ {
		for seg := 0; seg < t.SegmentsPerTurn; seg++ {
			angle := float64(turn*t.SegmentsPerTurn+seg) * (360.0 / float64(t.SegmentsPerTurn))
			z := float64(turn)*t.Pitch + float64(seg)/float64(t.SegmentsPerTurn)*t.Pitch
			if z >= guard {
				continue
			}
			steps = append(steps, ThreadStep{Angle: angle, Z: z})
		}
	}
	return steps
}

// Placement carries a feature solid from its local frame (axis +Z,
// base at z=0) into the body's frame. Identity placements pass the
// solid through unchanged.
type Placement func(kernel.Solid) kernel.Solid

// Identity is the no-op placement for features built in place.
func Identity(s kernel.Solid) kernel.Solid { return s }

// CutInternal cuts thread grooves into a bored boss. Grooves are built
// in the thread's local frame and carried into the body's frame by the
// placement. Groove blocks sit at the major radius less the groove
// depth and bite 1mm radially into the boss.
func (t Thread) CutInternal(k kernel.Kernel, body kernel.Solid, place Placement) kernel.Solid {
	radius := t.MajorDiameter/2 - 1.5
	for _, step := range t.Steps() {
		groove := k.Box(t.Pitch*0.4, 1.0, t.Pitch*0.35)
		groove = k.Translate(groove, 0, radius, step.Z+t.Pitch*0.175)
		groove = k.Rotate(groove, 0, 0, step.Angle)
		body = k.Difference(body, place(groove))
	}
	return body
}

// RidgeProfile is the cross-section of an external thread ridge block:
// radial depth, tangential width, and axial height as a fraction of the
// pitch. Inset pulls the ridge center in from the major radius so the
// block overlaps the shaft.
type RidgeProfile struct {
	Radial      float64
	Tangential  float64
	AxialFactor float64
	Inset       float64
}

// ProductionRidge is the full-size spout thread profile.
var ProductionRidge = RidgeProfile{Radial: 1.8, Tangential: 1.0, AxialFactor: 0.4, Inset: 0.9}

// CouponRidge is the reduced profile used on fit-test coupons.
var CouponRidge = RidgeProfile{Radial: 1.5, Tangential: 0.8, AxialFactor: 0.35, Inset: 0.8}

// AddExternal unions thread ridges onto a shaft. Same local frame as
// CutInternal: axis +Z, thread start at z=0.
func (t Thread) AddExternal(k kernel.Kernel, body kernel.Solid, profile RidgeProfile, place Placement) kernel.Solid {
	radius := t.MajorDiameter/2 - profile.Inset
	for _, step := range t.Steps() {
		ridge := k.Box(profile.Radial, profile.Tangential, t.Pitch*profile.AxialFactor)
		ridge = k.Translate(ridge, radius, 0, step.Z)
		ridge = k.Rotate(ridge, 0, 0, step.Angle)
		body = k.Union(body, place(ridge))
	}
	return body
}
