package part

import (
	"github.com/chazu/groundbox/pkg/feature"
	"github.com/chazu/groundbox/pkg/kernel"
)

// ScraperVariant selects how the capsule scraper pierces the foil.
type ScraperVariant int

const (
	// ScraperNailInserts cuts press-fit sockets for metal brad nails.
	// The base carries a reinforcement layer so the friction holes have
	// enough grip length.
	ScraperNailInserts ScraperVariant = iota

	// ScraperPrintedPins prints the piercing pins directly, with coned
	// tips. No reinforcement layer; the pins fuse into the base disc.
	ScraperPrintedPins
)

// Scraper builds the detachable capsule scraper: a disc base with
// piercing pins (or nail sockets) below and the bayonet shaft above.
// Local frame: base top at z=0, shaft extending up.
//
// Pin placement draws from the parameter seed, so both variants and the
// lid-integrated scraper share a layout when the seed matches.
func (b *Builder) Scraper(variant ScraperVariant) (kernel.Solid, error) {
	k, p := b.Kernel, b.Params

	shaft := k.Cylinder(p.ScraperShaftHeight, p.ScraperShaftDiameter/2)
	shaft = k.Translate(shaft, 0, 0, p.ScraperShaftHeight/2)
	shaft = productionBayonet(p).AddTabs(k, shaft)

	rng := b.rng()
	var s kernel.Solid
	switch variant {
	case ScraperPrintedPins:
		base := k.Cylinder(p.ScraperBaseHeight, p.ScraperBaseDiameter/2)
		base = k.Translate(base, 0, 0, p.ScraperBaseHeight/2)

		field := feature.PinField{
			Count:     p.PinCount,
			MinRadius: p.ScraperBaseDiameter / 6,
			MaxRadius: p.ScraperBaseDiameter / 2.5,
			Variance:  20,
		}
		// Pin length is measured from the base top.
		base = feature.SolidPins(k, base, field.Layout(rng), p.PinDiameter,
			p.PinLength-p.ScraperBaseHeight)
		s = k.Union(base, k.Translate(shaft, 0, 0, p.ScraperBaseHeight))
		s = k.Translate(s, 0, 0, -p.ScraperBaseHeight)

	default:
		depth := p.ScraperBaseHeight + p.PinReinforcementHeight
		base := k.Cylinder(depth, p.ScraperBaseDiameter/2)
		base = k.Translate(base, 0, 0, -depth/2)

		// Nail holes stay clear of the shaft footprint.
		field := feature.PinField{
			Count:     p.PinCount,
			MinRadius: p.ScraperShaftDiameter/2 + 1.5,
			MaxRadius: p.ScraperBaseDiameter / 2.5,
			Variance:  20,
		}
		inserts := feature.NailInserts{
			HoleDiameter:   p.NailHoleDiameter,
			SocketDiameter: p.NailSocketDiameter,
			SocketDepth:    p.NailSocketDepth,
			TaperLength:    p.NailTaperLength,
		}
		base = inserts.Cut(k, base, field.Layout(rng), depth)
		s = k.Union(base, shaft)
	}

	return b.resolveFragments("scraper", s), nil
}
