package params

import (
	"fmt"
	"math"
)

// Frame is the resolved drain geometry for one run. It is computed once
// from a validated Set and read everywhere; all position-dependent
// decisions live here so the part builders are written once against the
// frame instead of branching on the position themselves.
//
// Coordinates are the box frame: hull centered on the origin, Z up,
// before the final lift onto the print bed.
type Frame struct {
	Position Position

	// Drain centerline intersection with the wall's outer face.
	DrainX, DrainY, DrainZ float64

	// Outward is the unit normal of the drain wall, pointing out of the
	// box. The boss and bore extrude along -Outward.
	Outward [3]float64

	// InstallRotation carries a part built along +Z (spout shaft, seal
	// ring) onto the inward drain axis, as Euler degrees applied X
	// first.
	InstallRotation [3]float64

	// SlopeAlongX is true when the floor slopes along the X axis
	// (left/right drains) and false for the rear drain (Y axis).
	SlopeAlongX bool

	// SlopeRun is the interior footprint length along the slope axis.
	SlopeRun float64

	// SlopeRise is the height gained over the run.
	SlopeRise float64

	// FloorLowZ is the floor surface height at the drain wall, aligned
	// with the bottom of the drain hole. FloorHighZ is the far end.
	FloorLowZ, FloorHighZ float64
}

// Resolve computes the Frame for a validated Set.
func Resolve(s *Set) (*Frame, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	f := &Frame{Position: s.Position}

	drainZ := -s.BoxHeight/2 + s.DrainCenterHeight()
	slope := s.SlopeAngle * math.Pi / 180

	switch s.Position {
	case PositionLeft:
		f.DrainX = -s.BoxLength / 2
		f.DrainY = 0
		f.Outward = [3]float64{-1, 0, 0}
		f.InstallRotation = [3]float64{0, 90, 0}
		f.SlopeAlongX = true
		f.SlopeRun = s.BoxLength - 2*s.WallThickness
	case PositionRight:
		f.DrainX = s.BoxLength / 2
		f.DrainY = 0
		f.Outward = [3]float64{1, 0, 0}
		f.InstallRotation = [3]float64{0, -90, 0}
		f.SlopeAlongX = true
		f.SlopeRun = s.BoxLength - 2*s.WallThickness
	case PositionRear:
		f.DrainX = 0
		f.DrainY = -s.BoxWidth / 2
		f.Outward = [3]float64{0, -1, 0}
		f.InstallRotation = [3]float64{-90, 0, 0}
		f.SlopeAlongX = false
		f.SlopeRun = s.BoxWidth - 2*s.WallThickness
	default:
		return nil, fmt.Errorf("position %q: %w", s.Position, ErrUnknownPosition)
	}

	f.DrainZ = drainZ
	f.SlopeRise = f.SlopeRun * math.Tan(slope)
	f.FloorLowZ = drainZ - s.DrainHoleDiameter/2
	f.FloorHighZ = f.FloorLowZ + f.SlopeRise

	return f, nil
}

// LowEnd returns the slope-axis coordinate of the floor's low end. The
// low end always sits against the drain wall.
func (f *Frame) LowEnd() float64 {
	if f.SlopeAlongX {
		return math.Copysign(f.SlopeRun/2, f.Outward[0])
	}
	return math.Copysign(f.SlopeRun/2, f.Outward[1])
}

// HighEnd returns the slope-axis coordinate of the floor's high end.
func (f *Frame) HighEnd() float64 {
	return -f.LowEnd()
}
