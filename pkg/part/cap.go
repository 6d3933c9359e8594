package part

import "github.com/chazu/groundbox/pkg/kernel"

// Cap builds the push-on drip cap for the spout tube end: a closed-end
// cup with a clearance bore that friction-fits over the tube. Built
// closed end down, ready for the bed.
func (b *Builder) Cap() (kernel.Solid, error) {
	k, p := b.Kernel, b.Params

	outer := k.Cylinder(p.CapHeight, p.CapOuterDiameter()/2)
	outer = k.Translate(outer, 0, 0, p.CapHeight/2)

	boreLen := p.CapHeight - p.CapWallThickness + 1
	bore := k.Cylinder(boreLen, p.SpoutOuterDiameter/2+p.CapClearance)
	bore = k.Translate(bore, 0, 0, p.CapWallThickness+boreLen/2)
	return k.Difference(outer, bore), nil
}
