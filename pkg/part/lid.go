package part

import (
	"fmt"

	"github.com/chazu/groundbox/pkg/feature"
	"github.com/chazu/groundbox/pkg/kernel"
	"github.com/chazu/groundbox/pkg/params"
)

// Lock arc clearance used on the production lid socket. The fit-test
// coupon uses a tighter sweep.
const (
	lidArcMargin = 10
	lidArcStep   = 3
)

// Reinforcement depth under the pin scraper base when it is fused to
// the lid underside. The standalone nail-insert scraper carries the
// taller reinforcement from the parameter set.
const integratedPinReinforcement = 4

// productionBayonet assembles the bayonet coupling from the parameter
// set with the production lock-arc clearance.
func productionBayonet(p *params.Set) feature.Bayonet {
	return feature.Bayonet{
		ShaftDiameter: p.ScraperShaftDiameter,
		TabCount:      p.BayonetTabCount,
		TabHeight:     p.BayonetTabHeight,
		TabLength:     p.BayonetTabLength,
		TabProtrusion: p.BayonetTabProtrusion,
		RotationAngle: p.BayonetRotationAngle,
		SlotWidth:     p.BayonetSlotWidth,
		SlotVertical:  p.BayonetSlotVertical,
		LockDepth:     p.BayonetLockDepth,
		ArcMargin:     lidArcMargin,
		ArcStep:       lidArcStep,
	}
}

// Lid builds the box lid: a rounded top plate with a recess plug that
// drops into the box opening, a lofted hollow handle with a scraper
// storage groove, and either a bayonet socket for the detachable
// scraper or the pin scraper fused directly to the underside.
//
// Local frame: top plate centered on the origin, plug below, handle
// above.
func (b *Builder) Lid(integratedScraper bool) (kernel.Solid, error) {
	k, p := b.Kernel, b.Params
	t := p.LidTopThickness

	lid := k.RoundedBox(p.BoxLength, p.BoxWidth, t, p.FilletRadius)

	// Recess plug seats inside the box walls with clearance, overlapping
	// the plate slightly so the two fuse.
	plugLength := p.BoxLength - 2*p.WallThickness - 2*p.RecessClearance
	plugWidth := p.BoxWidth - 2*p.WallThickness - 2*p.RecessClearance
	plugCenter := -(t+p.RecessDepth)/2 + p.RecessOverlap
	plug := k.RoundedBox(plugLength, plugWidth, p.RecessDepth, p.LidRecessFillet)
	plug = k.Translate(plug, 0, 0, plugCenter)
	lid = k.Union(lid, plug)

	handle, err := b.handle()
	if err != nil {
		return nil, fmt.Errorf("lid handle: %w", err)
	}
	lid = k.Union(lid, handle)

	socketBase := plugCenter - p.RecessDepth/2
	if integratedScraper {
		lid = k.Union(lid, b.integratedScraper(socketBase))
	} else {
		bay := productionBayonet(p)
		lid = bay.CutSocket(k, lid, p.ScraperSocketDiameter, p.ScraperSocketDepth, socketBase)
	}

	return b.resolveFragments("lid", lid), nil
}

// handle builds the lofted grip: the outer shell narrows at mid-height
// for the fingers, the inner loft hollows it out from one wall
// thickness above the lid surface. A storage groove along the handle
// wedges the scraper shaft, with a keying slot for its friction ridge.
func (b *Builder) handle() (kernel.Solid, error) {
	k, p := b.Kernel, b.Params
	baseZ := p.LidTopThickness / 2
	th := p.HandleThickness
	gripWidth := p.HandleWidth * 0.6
	topWidth := p.HandleWidth * 0.75

	outer, err := feature.LoftStations(k, []feature.Station{
		{Width: p.HandleLength, Depth: p.HandleWidth, Z: baseZ},
		{Width: p.HandleLength - th, Depth: gripWidth, Z: baseZ + p.HandleHeight*0.5},
		{Width: p.HandleLength - 2*th, Depth: topWidth, Z: baseZ + p.HandleHeight},
	}, 0)
	if err != nil {
		return nil, err
	}
	inner, err := feature.LoftStations(k, []feature.Station{
		{Width: p.HandleLength - 2*th, Depth: p.HandleWidth - 2*th, Z: baseZ + th},
		{Width: p.HandleLength - 3*th, Depth: gripWidth - 2*th, Z: baseZ + p.HandleHeight*0.5},
		{Width: p.HandleLength - 4*th, Depth: topWidth - 2*th, Z: baseZ + p.HandleHeight},
	}, 0)
	if err != nil {
		return nil, err
	}
	handle := k.Difference(outer, inner)
	handle = feature.FilletOrContinue(k, handle, 2)

	// Storage groove runs along the handle axis, open through one end.
	grooveStart := -p.HandleLength/2 + 5
	grooveZ := baseZ + p.HandleHeight*0.6
	groove := k.Cylinder(p.StorageGrooveLength, p.StorageGrooveDiameter/2)
	groove = k.Rotate(groove, 0, 90, 0)
	groove = k.Translate(groove, grooveStart+p.StorageGrooveLength/2, 0, grooveZ)
	handle = k.Difference(handle, groove)

	// Keying slot at the groove floor accepts the friction ridge on the
	// scraper grip.
	slotLength := p.StorageGrooveLength - 4
	slot := k.Box(slotLength, p.RidgeSlotWidth, p.RidgeSlotDepth+0.2)
	slot = k.Translate(slot, grooveStart+2+slotLength/2, 0,
		grooveZ-p.StorageGrooveDiameter/2-p.RidgeSlotDepth/2+0.1)
	handle = k.Difference(handle, slot)

	return handle, nil
}

// integratedScraper builds the pin scraper fused to the lid underside:
// base disc plus reinforcement, with printed pins pointing down. The
// base top sits at the recess underside.
func (b *Builder) integratedScraper(topZ float64) kernel.Solid {
	k, p := b.Kernel, b.Params
	depth := p.ScraperBaseHeight + integratedPinReinforcement

	// Base underside at z=0, pins below; shifted into place at the end.
	base := k.Cylinder(depth, p.ScraperBaseDiameter/2)
	base = k.Translate(base, 0, 0, depth/2)

	field := feature.PinField{
		Count:     p.PinCount,
		MinRadius: p.ScraperBaseDiameter / 6,
		MaxRadius: p.ScraperBaseDiameter / 2.5,
		Variance:  20,
	}
	layout := field.Layout(b.rng())

	// The pin length is measured from the base top; the part buried in
	// the base does not protrude.
	protrusion := p.PinLength - depth
	scraper := feature.SolidPins(k, base, layout, p.PinDiameter, protrusion)
	// Shift so the base top lands on the recess underside.
	return k.Translate(scraper, 0, 0, topZ-depth)
}
