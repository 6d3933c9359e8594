package part

import "github.com/chazu/groundbox/pkg/kernel"

// SealRing builds the TPU gasket that sits in the spout flange groove.
// It is slightly thicker than the groove is deep, so tightening the
// spout compresses it against the box wall.
func (b *Builder) SealRing() (kernel.Solid, error) {
	k, p := b.Kernel, b.Params
	t := p.SealRingThickness()
	ring := k.Tube(t, p.SealRingOuterDiameter()/2, p.SealRingInnerDiameter()/2)
	return k.Translate(ring, 0, 0, t/2), nil
}
