package part

import (
	"github.com/chazu/groundbox/pkg/feature"
	"github.com/chazu/groundbox/pkg/kernel"
)

// Thread discretization used on the box boss. The spout matches the
// pitch and major diameter but uses its own segment count.
const (
	boxThreadSegments = 6
	boxThreadGuard    = 3
)

// Box builds the container hull: rounded shell with an open top,
// sloped floor with a drainage channel, internally threaded drain boss
// on the wall selected by the frame, and foot recesses. Local frame:
// centered on the origin, so the bottom face is at -height/2.
func (b *Builder) Box() (kernel.Solid, error) {
	k, p, f := b.Kernel, b.Params, b.Frame
	w := p.WallThickness

	// Shell: rounded hull minus an inset cavity that breaks through the
	// top face.
	outer := k.RoundedBox(p.BoxLength, p.BoxWidth, p.BoxHeight, p.FilletRadius)
	cavityRound := p.FilletRadius - w
	if cavityRound < 0.5 {
		cavityRound = 0.5
	}
	cavity := k.RoundedBox(p.BoxLength-2*w, p.BoxWidth-2*w, p.BoxHeight, cavityRound)
	cavity = k.Translate(cavity, 0, 0, w)
	hull := k.Difference(outer, cavity)

	// Soften the opening rim. Cosmetic: skipped when the kernel rejects
	// the radius.
	hull = feature.FilletOrContinue(k, hull, p.TopInnerFillet)

	// Flat base layer fuses the floor to the walls, the wedge on top of
	// it directs liquid toward the drain.
	interiorBottom := -p.BoxHeight/2 + w
	base := k.Box(p.BoxLength-2*w, p.BoxWidth-2*w, p.BaseLayerThickness)
	base = k.Translate(base, 0, 0, interiorBottom+p.BaseLayerThickness/2)
	floor := k.Union(base, b.slopeWedge())
	hull = k.Union(hull, floor)

	// Drainage channel guides liquid along the slope into the drain.
	hull = k.Difference(hull, b.slopeChannel())

	// Threaded boss protrudes inward from the drain wall.
	inX, inY := -f.Outward[0], -f.Outward[1]
	rot := f.InstallRotation

	boss := k.Cylinder(p.BossLength, p.BossOuterDiameter/2)
	boss = k.Rotate(boss, rot[0], rot[1], rot[2])
	boss = k.Translate(boss,
		f.DrainX+inX*(w+p.BossLength/2),
		f.DrainY+inY*(w+p.BossLength/2),
		f.DrainZ)
	hull = k.Union(hull, boss)

	// Clearance bore, undersized against the thread major diameter so
	// the grooves bite into the boss. Runs 5mm proud on both ends.
	boreLen := w + p.BossLength + 10
	bore := k.Cylinder(boreLen, p.ThreadMajorDiameter/2-1.0)
	bore = k.Rotate(bore, rot[0], rot[1], rot[2])
	bore = k.Translate(bore,
		f.DrainX+inX*(boreLen/2-5),
		f.DrainY+inY*(boreLen/2-5),
		f.DrainZ)
	hull = k.Difference(hull, bore)

	// Internal thread grooves, starting at the wall's inner surface.
	th := feature.Thread{
		MajorDiameter:   p.ThreadMajorDiameter,
		Pitch:           p.ThreadPitch,
		Length:          p.ThreadLength,
		SegmentsPerTurn: boxThreadSegments,
		GuardDivisor:    boxThreadGuard,
	}
	place := func(s kernel.Solid) kernel.Solid {
		s = k.Rotate(s, rot[0], rot[1], rot[2])
		return k.Translate(s, f.DrainX+inX*w, f.DrainY+inY*w, f.DrainZ)
	}
	hull = th.CutInternal(k, hull, place)

	// Foot recesses under the four corners.
	sx := p.BoxLength/2 - p.FootEdgeMargin
	sy := p.BoxWidth/2 - p.FootEdgeMargin
	for _, c := range [][2]float64{{sx, sy}, {-sx, sy}, {sx, -sy}, {-sx, -sy}} {
		foot := k.Cylinder(p.FootRecessDepth+1, p.FootDiameter/2)
		foot = k.Translate(foot, c[0], c[1], -p.BoxHeight/2+(p.FootRecessDepth-1)/2)
		hull = k.Difference(hull, foot)
	}

	return b.resolveFragments("box", hull), nil
}

// slopeWedge builds the sloped floor: a wedge profile in the slope
// plane, extruded across the interior and oriented by the frame. The
// low edge aligns with the bottom of the drain hole.
func (b *Builder) slopeWedge() kernel.Solid {
	k, p, f := b.Kernel, b.Params, b.Frame
	floorBottom := -p.BoxHeight/2 + p.WallThickness

	u0, z0 := f.LowEnd(), f.FloorLowZ
	u1, z1 := f.HighEnd(), f.FloorHighZ
	if u0 > u1 {
		u0, z0, u1, z1 = u1, z1, u0, z0
	}
	// The wedge cannot drop below the interior bottom.
	if z0 < floorBottom+0.2 {
		z0 = floorBottom + 0.2
	}
	if z1 < floorBottom+0.2 {
		z1 = floorBottom + 0.2
	}

	points := [][2]float64{{u0, floorBottom}, {u1, floorBottom}, {u1, z1}, {u0, z0}}

	width := p.BoxWidth - 2*p.WallThickness
	if !f.SlopeAlongX {
		width = p.BoxLength - 2*p.WallThickness
	}
	wedge := k.ExtrudeProfile(points, width)
	return b.orientSlopeProfile(wedge)
}

// slopeChannel builds the groove cut along the slope surface.
func (b *Builder) slopeChannel() kernel.Solid {
	k, p, f := b.Kernel, b.Params, b.Frame

	u0, z0 := f.LowEnd(), f.FloorLowZ
	u1, z1 := f.HighEnd(), f.FloorHighZ
	if u0 > u1 {
		u0, z0, u1, z1 = u1, z1, u0, z0
	}
	// Trim the channel short of the walls.
	u0 += 2
	u1 -= 2

	d := p.ChannelDepth
	points := [][2]float64{{u0, z0 - d}, {u1, z1 - d}, {u1, z1}, {u0, z0}}

	channel := k.ExtrudeProfile(points, p.ChannelWidth)
	return b.orientSlopeProfile(channel)
}

// orientSlopeProfile rotates a profile extruded along Z into the slope
// plane: profile X onto the slope axis, profile Y onto world Z.
func (b *Builder) orientSlopeProfile(s kernel.Solid) kernel.Solid {
	if b.Frame.SlopeAlongX {
		return b.Kernel.Rotate(s, 90, 0, 0)
	}
	return b.Kernel.Rotate(s, 90, 0, 90)
}
