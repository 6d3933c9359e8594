package feature

import (
	"fmt"

	"github.com/chazu/groundbox/pkg/kernel"
)

// Station is one rectangular cross-section in a lofted profile stack,
// centered on the Z axis at height Z.
type Station struct {
	Width, Depth, Z float64
}

// LoftStations lofts consecutive station pairs and unions the segments
// into one tapered solid. At least two stations are required and they
// must be ordered by ascending Z.
func LoftStations(k kernel.Kernel, stations []Station, round float64) (kernel.Solid, error) {
	if len(stations) < 2 {
		return nil, fmt.Errorf("loft needs at least 2 stations, got %d: %w",
			len(stations), kernel.ErrDegenerate)
	}

	var result kernel.Solid
	for i := 0; i < len(stations)-1; i++ {
		lo, hi := stations[i], stations[i+1]
		height := hi.Z - lo.Z
		if height <= 0 {
			return nil, fmt.Errorf("stations %d and %d not ascending: %w", i, i+1, kernel.ErrDegenerate)
		}
		seg, err := k.LoftRect(lo.Width, lo.Depth, hi.Width, hi.Depth, round, height)
		if err != nil {
			return nil, fmt.Errorf("loft segment %d: %w", i, err)
		}
		seg = k.Translate(seg, 0, 0, lo.Z+height/2)
		if result == nil {
			result = seg
		} else {
			result = k.Union(result, seg)
		}
	}
	return result, nil
}

// FilletOrContinue applies an optional cosmetic fillet. A kernel
// rejection leaves the solid unfilleted; the geometry is still valid
// without it.
func FilletOrContinue(k kernel.Kernel, s kernel.Solid, radius float64) kernel.Solid {
	rounded, err := k.Fillet(s, radius)
	if err != nil {
		return s
	}
	return rounded
}
