package part

import (
	"github.com/chazu/groundbox/pkg/feature"
	"github.com/chazu/groundbox/pkg/kernel"
)

// Spout thread discretization. Finer than the box boss so the printed
// ridges ride smoothly in the stepped grooves.
const (
	spoutThreadSegments = 8
	spoutThreadGuard    = 4
)

// Spout builds the threaded compression drain spout in installed
// orientation: z=0 at the wall contact plane, threaded shaft extending
// +Z into the boss, tube extending -Z toward the sink. Hand tightening
// compresses the seal ring in the flange groove against the wall.
func (b *Builder) Spout() (kernel.Solid, error) {
	k, p := b.Kernel, b.Params

	// Hex grip behind a circular compression flange.
	hex := k.HexPrism(p.HexThickness, p.HexSize)
	hex = k.Translate(hex, 0, 0, -p.HexThickness/2)
	flange := k.Cylinder(p.FlangeThickness, p.FlangeDiameter/2)
	flange = k.Translate(flange, 0, 0, -p.FlangeThickness/2)
	body := k.Union(hex, flange)

	// Gasket groove in the wall-facing flange face.
	groove := k.Tube(p.SealGrooveDepth,
		(p.SealGrooveDiameter+p.SealGrooveWidth)/2, p.SealGrooveDiameter/2)
	groove = k.Translate(groove, 0, 0, -p.SealGrooveDepth/2)
	body = k.Difference(body, groove)

	// Threaded shaft, undersized half a millimetre for smooth threading.
	shaft := k.Cylinder(p.SpoutThreadLength, p.ThreadMajorDiameter/2-0.5)
	shaft = k.Translate(shaft, 0, 0, p.SpoutThreadLength/2)
	body = k.Union(body, shaft)

	th := feature.Thread{
		MajorDiameter:   p.ThreadMajorDiameter,
		Pitch:           p.ThreadPitch,
		Length:          p.SpoutThreadLength,
		SegmentsPerTurn: spoutThreadSegments,
		GuardDivisor:    spoutThreadGuard,
	}
	body = th.AddExternal(k, body, feature.ProductionRidge, feature.Identity)

	tube := k.Cylinder(p.SpoutLength, p.SpoutOuterDiameter/2)
	tube = k.Translate(tube, 0, 0, -p.FlangeThickness-p.SpoutLength/2)
	body = k.Union(body, tube)

	// Through bore, overshooting both ends.
	boreLen := p.SpoutLength + p.FlangeThickness + p.SpoutThreadLength + 10
	bore := k.Cylinder(boreLen, p.SpoutInnerDiameter/2)
	bore = k.Translate(bore, 0, 0, (p.SpoutThreadLength-p.SpoutLength-p.FlangeThickness)/2)
	body = k.Difference(body, bore)

	// Funnel flare at the shaft mouth widens the bore entrance to catch
	// liquid off the sloped floor.
	funnel := k.Cone(4, p.SpoutInnerDiameter/2, p.SpoutInnerDiameter/2+3)
	funnel = k.Translate(funnel, 0, 0, p.SpoutThreadLength-2)
	body = k.Difference(body, funnel)

	// Angled drip cut at the tube end.
	cutter := k.Box(p.SpoutOuterDiameter+10, p.SpoutOuterDiameter+10, 10)
	cutter = k.Translate(cutter, 0, 0, -5)
	cutter = k.Rotate(cutter, 20, 0, 0)
	cutter = k.Translate(cutter, 0, 0, -p.SpoutLength-p.FlangeThickness)
	body = k.Difference(body, cutter)

	return b.resolveFragments("spout", body), nil
}

// SpoutForPrinting returns the spout flipped tube-up onto the print
// bed. TPU prints the overhang-free orientation only.
func (b *Builder) SpoutForPrinting() (kernel.Solid, error) {
	s, err := b.Spout()
	if err != nil {
		return nil, err
	}
	s = b.Kernel.Rotate(s, 180, 0, 0)
	return b.liftToBed(s), nil
}
