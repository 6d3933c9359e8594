package part

import (
	"github.com/chazu/groundbox/pkg/feature"
	"github.com/chazu/groundbox/pkg/kernel"
)

// The storage scraper is a fixed design sized against the lid's storage
// groove rather than the parameter set: a french-press scraper whose
// shaft wedges into the groove with a friction ridge keying into the
// lid's slot. Dimensions carry a 5% compaction factor so the part
// clears the box interior.
const (
	storageScale = 0.95

	storageBladeWidth     = 55 * storageScale
	storageBladeLength    = 35 * storageScale
	storageBladeThickness = 2.5 * storageScale
	storageBladeCorner    = 12 * storageScale

	// Slightly under the 15mm groove for a tight friction fit; the
	// shaft carries a 12mm extension beyond the groove length.
	storageShaftDiameter = 14.5 * storageScale
	storageShaftLength   = 78*storageScale + 12

	storageRidgeWidth   = 7.2*storageScale - 1.5
	storageRidgeHeight  = 6.0
	storageRidgeLength  = 45*storageScale + 5
	storageRidgeGripGap = 5*storageScale + 2

	storageGripDiameter    = 18 * storageScale
	storageGripLength      = 60 * storageScale
	storageGripRidgeHeight = 1.2 * storageScale
	storageGripRidgePitch  = 5 * storageScale
)

// StorageScraper builds the groove-stored french press scraper: oblong
// blade at the bottom, friction shaft, ribbed grip and a tapered end
// cap. Prints standing on the blade; the local frame already has the
// blade at z=0.
func (b *Builder) StorageScraper() (kernel.Solid, error) {
	k := b.Kernel

	// Oblong blade with rounded corners to follow curved vessel walls.
	blade := k.RoundedBox(storageBladeLength, storageBladeWidth, storageBladeThickness, storageBladeCorner)
	blade = k.Translate(blade, 0, 0, storageBladeThickness/2)

	// Stepped reinforcement eases the load path from blade to shaft.
	collarH := 4 * storageScale
	collar := k.Box(storageBladeLength*0.5, storageBladeWidth*0.5, collarH)
	collar = k.Translate(collar, 0, 0, storageBladeThickness+collarH/2)
	neckH := 3 * storageScale
	neck := k.Cylinder(neckH, storageShaftDiameter/2+storageScale)
	neck = k.Translate(neck, 0, 0, storageBladeThickness+collarH+neckH/2)

	s := k.Union(blade, k.Union(collar, neck))

	shaftStart := storageBladeThickness + 7*storageScale
	shaft := k.Cylinder(storageShaftLength, storageShaftDiameter/2)
	shaft = k.Translate(shaft, 0, 0, shaftStart+storageShaftLength/2)

	// Friction ridge ends short of the grip so the grip stays outside
	// the groove.
	ridgeStart := shaftStart + storageShaftLength - storageRidgeLength - storageRidgeGripGap
	ridge := k.Box(storageRidgeHeight, storageRidgeWidth, storageRidgeLength)
	ridge = k.Translate(ridge,
		storageShaftDiameter/2+storageRidgeHeight/2, 0,
		ridgeStart+storageRidgeLength/2)
	s = k.Union(s, k.Union(shaft, ridge))

	s = k.Union(s, b.storageGrip(shaftStart+storageShaftLength))

	return b.resolveFragments("storage scraper", s), nil
}

// storageGrip builds the ribbed grip cylinder and its tapered end cap,
// starting at the given z.
func (b *Builder) storageGrip(startZ float64) kernel.Solid {
	k := b.Kernel

	grip := k.Cylinder(storageGripLength, storageGripDiameter/2)
	grip = k.Translate(grip, 0, 0, startZ+storageGripLength/2)

	ribH := 2 * storageScale
	for i := 0; i < int(storageGripLength/storageGripRidgePitch); i++ {
		z := float64(i)*storageGripRidgePitch + 2*storageScale
		if z >= storageGripLength-2*storageScale {
			break
		}
		rib := k.Cylinder(ribH, storageGripDiameter/2+storageGripRidgeHeight)
		rib = k.Translate(rib, 0, 0, startZ+z+ribH/2)
		grip = k.Union(grip, rib)
	}
	grip = feature.FilletOrContinue(k, grip, 0.3*storageScale)

	capH := 5 * storageScale
	endCap := k.Cone(capH, storageGripDiameter/2, storageGripDiameter/2-2*storageScale)
	endCap = k.Translate(endCap, 0, 0, startZ+storageGripLength+capH/2)
	return k.Union(grip, endCap)
}
