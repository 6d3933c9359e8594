package part

import (
	"github.com/chazu/groundbox/pkg/feature"
	"github.com/chazu/groundbox/pkg/kernel"
	"github.com/chazu/groundbox/pkg/params"
)

// Fit-test coupons are cut down to 60% of the production sections to
// save filament; the mating surfaces keep full-size dimensions. Threads
// drop to 4 segments per turn, which is coarse but enough to verify
// engagement.
const (
	couponDepth  = 24
	couponWidth  = 48
	couponHeight = 36

	lidCouponSize = 42

	fitSpoutLength = 50
	fitBedGap      = 5

	fitThreadSegments = 4
	fitThreadGuard    = 3
)

// fitBayonet is the reduced coupling used on the coupons: smaller tabs
// and a tighter lock sweep than the production lid.
func fitBayonet(p *params.Set) feature.Bayonet {
	return feature.Bayonet{
		ShaftDiameter: p.ScraperShaftDiameter,
		TabCount:      p.BayonetTabCount,
		TabHeight:     2,
		TabLength:     4,
		TabProtrusion: 1,
		RotationAngle: p.BayonetRotationAngle,
		SlotWidth:     2.2,
		SlotVertical:  p.BayonetSlotVertical,
		LockDepth:     2,
		ArcMargin:     5,
		ArcStep:       5,
	}
}

// FitTest builds the combined fit-test plate: drain coupon, threaded
// spout, lid socket coupon, pin scraper, seal ring and cap arranged
// along the X axis on the bed. The result is intentionally six separate
// islands printed in one job.
func (b *Builder) FitTest() (kernel.Solid, error) {
	k := b.Kernel

	coupon := b.drainCoupon()
	plate := k.Union(coupon, b.fitSpout())

	lid := b.lidCoupon()
	lid = placeAfter(k, plate, lid, fitBedGap)
	plate = k.Union(plate, lid)

	scraper := b.fitScraper()
	scraper = placeAfter(k, plate, scraper, fitBedGap)
	plate = k.Union(plate, scraper)

	ring, err := b.SealRing()
	if err != nil {
		return nil, err
	}
	ring = placeAfter(k, plate, ring, fitBedGap)
	plate = k.Union(plate, ring)

	dripCap, err := b.Cap()
	if err != nil {
		return nil, err
	}
	dripCap = placeAfter(k, plate, dripCap, fitBedGap)
	return k.Union(plate, dripCap), nil
}

// placeAfter lifts a part onto the bed and shifts it along +X so it
// clears everything already on the plate by the gap.
func placeAfter(k kernel.Kernel, plate, s kernel.Solid, gap float64) kernel.Solid {
	_, plateMax := plate.BoundingBox()
	min, _ := s.BoundingBox()
	return k.Translate(s, plateMax[0]+gap-min[0], 0, -min[2])
}

// drainCoupon builds a hollow wall section with the threaded boss: left
// wall carries the drain, the floor and side walls stiffen it, the top
// and right side stay open. Sits on the bed spanning x in [0, depth].
func (b *Builder) drainCoupon() kernel.Solid {
	k, p := b.Kernel, b.Params
	w := p.WallThickness
	drainZ := p.DrainCenterHeight()

	outer := k.Box(couponDepth, couponWidth, couponHeight)
	outer = k.Translate(outer, 0, 0, couponHeight/2.0)

	interior := k.Box(couponDepth-w, couponWidth-2*w, couponHeight-w)
	interior = k.Translate(interior, w/2, 0, (couponHeight-w)/2+w)
	c := k.Difference(outer, interior)

	innerWall := -couponDepth/2.0 + w
	boss := k.Cylinder(p.BossLength, p.BossOuterDiameter/2)
	boss = k.Rotate(boss, 0, 90, 0)
	boss = k.Translate(boss, innerWall+p.BossLength/2, 0, drainZ)
	c = k.Union(c, boss)

	// Tight clearance hole for thread engagement by friction.
	holeLen := 3 + w + p.BossLength + 3
	hole := k.Cylinder(holeLen, p.ThreadMajorDiameter/2-0.45)
	hole = k.Rotate(hole, 0, 90, 0)
	hole = k.Translate(hole, -couponDepth/2.0-3+holeLen/2, 0, drainZ)
	c = k.Difference(c, hole)

	th := feature.Thread{
		MajorDiameter:   p.ThreadMajorDiameter,
		Pitch:           p.ThreadPitch,
		Length:          p.ThreadLength,
		SegmentsPerTurn: fitThreadSegments,
		GuardDivisor:    fitThreadGuard,
	}
	place := func(s kernel.Solid) kernel.Solid {
		s = k.Rotate(s, 0, 90, 0)
		return k.Translate(s, innerWall, 0, drainZ)
	}
	c = th.CutInternal(k, c, place)

	// Shift off the centered frame so the coupon spans x in [0, depth].
	return k.Translate(c, couponDepth/2.0, 0, 0)
}

// fitSpout builds the threaded spout with a shortened tube and no drip
// cut, laid on its side with the shaft aimed at the coupon's drain hole
// for visual alignment checks.
func (b *Builder) fitSpout() kernel.Solid {
	k, p := b.Kernel, b.Params

	hex := k.HexPrism(p.HexThickness, p.HexSize)
	hex = k.Translate(hex, 0, 0, -p.HexThickness/2)
	flange := k.Cylinder(p.FlangeThickness, p.FlangeDiameter/2)
	flange = k.Translate(flange, 0, 0, -p.FlangeThickness/2)
	body := k.Union(hex, flange)

	groove := k.Tube(p.SealGrooveDepth,
		(p.SealGrooveDiameter+p.SealGrooveWidth)/2, p.SealGrooveDiameter/2)
	groove = k.Translate(groove, 0, 0, -p.SealGrooveDepth/2)
	body = k.Difference(body, groove)

	shaft := k.Cylinder(p.SpoutThreadLength, p.ThreadMajorDiameter/2-0.5)
	shaft = k.Translate(shaft, 0, 0, p.SpoutThreadLength/2)
	body = k.Union(body, shaft)

	th := feature.Thread{
		MajorDiameter:   p.ThreadMajorDiameter,
		Pitch:           p.ThreadPitch,
		Length:          p.SpoutThreadLength,
		SegmentsPerTurn: fitThreadSegments,
		GuardDivisor:    fitThreadGuard,
	}
	body = th.AddExternal(k, body, feature.CouponRidge, feature.Identity)

	tube := k.Cylinder(fitSpoutLength, p.SpoutOuterDiameter/2)
	tube = k.Translate(tube, 0, 0, -p.FlangeThickness-fitSpoutLength/2.0)
	body = k.Union(body, tube)

	boreLen := fitSpoutLength + p.FlangeThickness + p.SpoutThreadLength + 10
	bore := k.Cylinder(boreLen, p.SpoutInnerDiameter/2)
	bore = k.Translate(bore, 0, 0, (p.SpoutThreadLength-fitSpoutLength-p.FlangeThickness)/2)
	body = k.Difference(body, bore)

	// Shaft toward +X, flange trailing, aligned with the drain center.
	body = k.Rotate(body, 0, 90, 0)
	return k.Translate(body, -fitSpoutLength-p.FlangeThickness+15, 0, b.Params.DrainCenterHeight())
}

// lidCoupon builds a square lid section with the recess plug and the
// bayonet socket.
func (b *Builder) lidCoupon() kernel.Solid {
	k, p := b.Kernel, b.Params
	total := p.LidTopThickness + p.RecessDepth

	c := k.Box(lidCouponSize, lidCouponSize, total)
	c = k.Translate(c, 0, 0, total/2)

	// Plug hangs below the slab underside, same stack as the real lid.
	plugSize := lidCouponSize - 2*p.WallThickness - 2*p.RecessClearance
	recessCenter := -total/2 + p.RecessOverlap
	plug := k.Box(plugSize, plugSize, p.RecessDepth)
	plug = k.Translate(plug, 0, 0, total/2+recessCenter)
	c = k.Union(c, plug)

	socketBase := total/2 + recessCenter - p.RecessDepth/2
	bay := fitBayonet(p)
	return bay.CutSocket(k, c, p.ScraperSocketDiameter, p.ScraperSocketDepth, socketBase)
}

// fitScraper builds the printed-pin scraper with the coupon bayonet
// tabs, flipped pins-up so the base prints flat.
func (b *Builder) fitScraper() kernel.Solid {
	k, p := b.Kernel, b.Params

	depth := p.ScraperBaseHeight + integratedPinReinforcement
	base := k.Cylinder(depth, p.ScraperBaseDiameter/2)
	base = k.Translate(base, 0, 0, depth/2)

	field := feature.PinField{
		Count:     p.PinCount,
		MinRadius: p.ScraperBaseDiameter / 6,
		MaxRadius: p.ScraperBaseDiameter / 2.5,
		Variance:  20,
	}
	layout := field.Layout(b.rng())
	base = feature.SolidPins(k, base, layout, p.PinDiameter, p.PinLength-depth)

	shaft := k.Cylinder(p.ScraperShaftHeight, p.ScraperShaftDiameter/2)
	shaft = k.Translate(shaft, 0, 0, p.ScraperShaftHeight/2)
	shaft = fitBayonet(p).AddTabs(k, shaft)
	s := k.Union(base, k.Translate(shaft, 0, 0, depth))

	return k.Rotate(s, 180, 0, 0)
}
