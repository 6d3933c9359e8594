// Package params holds the dimensional parameter set for the compost
// container assembly and resolves the derived quantities that depend on
// the drain position. Validation happens once, up front; geometry code
// never re-checks dimensions.
package params

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter reports a dimension that cannot produce
	// printable geometry.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnknownPosition reports a drain position outside the supported
	// set.
	ErrUnknownPosition = errors.New("unknown drain position")
)

// Position selects the wall carrying the drain fitting.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
	PositionRear  Position = "rear"
)

// Set is the full parameter record for one generation run. All lengths
// are millimetres, angles degrees. JSON tags match the web client's
// field names.
type Set struct {
	// Hull.
	BoxLength      float64 `json:"boxLength"`
	BoxWidth       float64 `json:"boxWidth"`
	BoxHeight      float64 `json:"boxHeight"`
	WallThickness  float64 `json:"wallThickness"`
	FilletRadius   float64 `json:"filletRadius"`
	TopInnerFillet float64 `json:"topInnerFillet"`

	// Sloped floor and drainage channel.
	SlopeAngle         float64 `json:"slopeAngle"`
	BaseLayerThickness float64 `json:"baseLayerThickness"`
	ChannelWidth       float64 `json:"channelWidth"`
	ChannelDepth       float64 `json:"channelDepth"`

	// Drain fitting.
	Position            Position `json:"spoutPosition"`
	DrainHoleDiameter   float64  `json:"drainHoleDiameter"`
	DrainBoreDiameter   float64  `json:"drainBoreDiameter"`
	ThreadMajorDiameter float64  `json:"threadDiameter"`
	ThreadPitch         float64  `json:"threadPitch"`
	ThreadLength        float64  `json:"threadLength"`
	SpoutThreadLength   float64  `json:"spoutThreadLength"`
	BossOuterDiameter   float64  `json:"bossOuterDiameter"`
	BossLength          float64  `json:"bossLength"`

	// Feet.
	FootDiameter    float64 `json:"footDiameter"`
	FootRecessDepth float64 `json:"footRecessDepth"`
	FootEdgeMargin  float64 `json:"footEdgeMargin"`

	// Lid.
	LidTopThickness float64 `json:"lidTopThickness"`
	RecessDepth     float64 `json:"recessDepth"`
	RecessClearance float64 `json:"recessClearance"`
	RecessOverlap   float64 `json:"recessOverlap"`
	LidRecessFillet float64 `json:"lidRecessFillet"`

	// Handle and scraper storage groove.
	HandleLength          float64 `json:"handleLength"`
	HandleWidth           float64 `json:"handleWidth"`
	HandleHeight          float64 `json:"handleHeight"`
	HandleThickness       float64 `json:"handleThickness"`
	StorageGrooveDiameter float64 `json:"storageGrooveDiameter"`
	StorageGrooveLength   float64 `json:"storageGrooveLength"`
	RidgeSlotWidth        float64 `json:"ridgeSlotWidth"`
	RidgeSlotDepth        float64 `json:"ridgeSlotDepth"`

	// Capsule scraper.
	ScraperBaseDiameter    float64 `json:"scraperBaseDiameter"`
	ScraperBaseHeight      float64 `json:"scraperBaseHeight"`
	PinCount               int     `json:"pinCount"`
	PinLength              float64 `json:"pinLength"`
	PinDiameter            float64 `json:"pinDiameter"`
	PinReinforcementHeight float64 `json:"pinReinforcementHeight"`

	// Nail inserts (press-fit metal pins).
	NailHoleDiameter   float64 `json:"nailHoleDiameter"`
	NailSocketDiameter float64 `json:"nailSocketDiameter"`
	NailSocketDepth    float64 `json:"nailSocketDepth"`
	NailTaperLength    float64 `json:"nailTaperLength"`

	// Bayonet coupling between scraper and lid.
	ScraperShaftDiameter  float64 `json:"scraperShaftDiameter"`
	ScraperShaftHeight    float64 `json:"scraperShaftHeight"`
	ScraperSocketDiameter float64 `json:"scraperSocketDiameter"`
	ScraperSocketDepth    float64 `json:"scraperSocketDepth"`
	BayonetTabCount       int     `json:"bayonetTabCount"`
	BayonetTabHeight      float64 `json:"bayonetTabHeight"`
	BayonetTabLength      float64 `json:"bayonetTabLength"`
	BayonetTabProtrusion  float64 `json:"bayonetTabProtrusion"`
	BayonetRotationAngle  float64 `json:"bayonetRotationAngle"`
	BayonetSlotWidth      float64 `json:"bayonetSlotWidth"`
	BayonetSlotVertical   float64 `json:"bayonetSlotVertical"`
	BayonetLockDepth      float64 `json:"bayonetLockDepth"`

	// Spout, seal ring and cap.
	SpoutOuterDiameter float64 `json:"spoutOuterDiameter"`
	SpoutInnerDiameter float64 `json:"spoutInnerDiameter"`
	SpoutLength        float64 `json:"spoutLength"`
	FlangeDiameter     float64 `json:"flangeDiameter"`
	FlangeThickness    float64 `json:"flangeThickness"`
	SealGrooveDiameter float64 `json:"sealGrooveDiameter"`
	SealGrooveWidth    float64 `json:"sealGrooveWidth"`
	SealGrooveDepth    float64 `json:"sealGrooveDepth"`
	HexSize            float64 `json:"hexSize"`
	HexThickness       float64 `json:"hexThickness"`
	CapWallThickness   float64 `json:"capWallThickness"`
	CapHeight          float64 `json:"capHeight"`
	CapClearance       float64 `json:"capClearance"`

	// Seed drives the pin-field placement. The same seed reproduces the
	// same pin layout across parts.
	Seed int64 `json:"seed"`
}

// Default returns the production parameter set: a 200x150x150 box with
// an M16x3 drain fitting on the left wall.
func Default() Set {
	return Set{
		BoxLength:      200,
		BoxWidth:       150,
		BoxHeight:      150,
		WallThickness:  4,
		FilletRadius:   8,
		TopInnerFillet: 1.5,

		SlopeAngle:         2,
		BaseLayerThickness: 2,
		ChannelWidth:       12,
		ChannelDepth:       2.5,

		Position:            PositionLeft,
		DrainHoleDiameter:   17,
		DrainBoreDiameter:   12,
		ThreadMajorDiameter: 16,
		ThreadPitch:         3,
		ThreadLength:        20,
		SpoutThreadLength:   18,
		BossOuterDiameter:   22.4,
		BossLength:          15,

		FootDiameter:    10,
		FootRecessDepth: 2,
		FootEdgeMargin:  18,

		LidTopThickness: 5,
		RecessDepth:     10,
		RecessClearance: 0.5,
		RecessOverlap:   0.2,
		LidRecessFillet: 2,

		HandleLength:          70,
		HandleWidth:           20,
		HandleHeight:          12,
		HandleThickness:       5,
		StorageGrooveDiameter: 15,
		StorageGrooveLength:   80,
		RidgeSlotWidth:        2.7,
		RidgeSlotDepth:        1,

		ScraperBaseDiameter:    28,
		ScraperBaseHeight:      3,
		PinCount:               8,
		PinLength:              29.75,
		PinDiameter:            2.5,
		PinReinforcementHeight: 10,

		NailHoleDiameter:   1.4,
		NailSocketDiameter: 3.5,
		NailSocketDepth:    8,
		NailTaperLength:    2,

		ScraperShaftDiameter:  14,
		ScraperShaftHeight:    10,
		ScraperSocketDiameter: 14.2,
		ScraperSocketDepth:    10,
		BayonetTabCount:       3,
		BayonetTabHeight:      3,
		BayonetTabLength:      6,
		BayonetTabProtrusion:  1.35,
		BayonetRotationAngle:  60,
		BayonetSlotWidth:      3.5,
		BayonetSlotVertical:   6,
		BayonetLockDepth:      3,

		SpoutOuterDiameter: 11.2,
		SpoutInnerDiameter: 8,
		SpoutLength:        60,
		FlangeDiameter:     24,
		FlangeThickness:    4,
		SealGrooveDiameter: 19.2,
		SealGrooveWidth:    2,
		SealGrooveDepth:    1.5,
		HexSize:            20.8,
		HexThickness:       6,
		CapWallThickness:   1.5,
		CapHeight:          8,
		CapClearance:       0.2,

		Seed: 42,
	}
}

// DrainCenterHeight returns the drain centerline height above the box
// bottom: 5mm clearance under the hole plus the hole radius.
func (s *Set) DrainCenterHeight() float64 {
	return 5 + s.DrainHoleDiameter/2
}

// SealRingOuterDiameter derives the gasket outer diameter from the
// groove it compresses into.
func (s *Set) SealRingOuterDiameter() float64 {
	return s.SealGrooveDiameter + s.SealGrooveWidth
}

// SealRingInnerDiameter derives the gasket inner diameter.
func (s *Set) SealRingInnerDiameter() float64 {
	return s.SealGrooveDiameter
}

// SealRingThickness derives the gasket thickness: slightly taller than
// the groove so it compresses.
func (s *Set) SealRingThickness() float64 {
	return s.SealGrooveDepth + 0.5
}

// CapOuterDiameter derives the press-fit cap diameter from the tube it
// covers.
func (s *Set) CapOuterDiameter() float64 {
	return s.SpoutOuterDiameter + 3
}

func positive(name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %g: %w", name, v, ErrInvalidParameter)
	}
	return nil
}

// Validate checks the set for dimensions that cannot produce printable
// geometry. The first problem found is returned; geometry construction
// must not start on an invalid set.
func (s *Set) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"boxLength", s.BoxLength},
		{"boxWidth", s.BoxWidth},
		{"boxHeight", s.BoxHeight},
		{"wallThickness", s.WallThickness},
		{"filletRadius", s.FilletRadius},
		{"slopeAngle", s.SlopeAngle},
		{"drainHoleDiameter", s.DrainHoleDiameter},
		{"drainBoreDiameter", s.DrainBoreDiameter},
		{"threadDiameter", s.ThreadMajorDiameter},
		{"threadPitch", s.ThreadPitch},
		{"threadLength", s.ThreadLength},
		{"spoutThreadLength", s.SpoutThreadLength},
		{"bossOuterDiameter", s.BossOuterDiameter},
		{"bossLength", s.BossLength},
		{"lidTopThickness", s.LidTopThickness},
		{"recessDepth", s.RecessDepth},
		{"handleLength", s.HandleLength},
		{"handleWidth", s.HandleWidth},
		{"handleHeight", s.HandleHeight},
		{"handleThickness", s.HandleThickness},
		{"scraperBaseDiameter", s.ScraperBaseDiameter},
		{"scraperBaseHeight", s.ScraperBaseHeight},
		{"pinLength", s.PinLength},
		{"pinDiameter", s.PinDiameter},
		{"scraperShaftDiameter", s.ScraperShaftDiameter},
		{"scraperShaftHeight", s.ScraperShaftHeight},
		{"bayonetRotationAngle", s.BayonetRotationAngle},
		{"spoutOuterDiameter", s.SpoutOuterDiameter},
		{"spoutInnerDiameter", s.SpoutInnerDiameter},
		{"spoutLength", s.SpoutLength},
		{"flangeDiameter", s.FlangeDiameter},
		{"flangeThickness", s.FlangeThickness},
		{"hexSize", s.HexSize},
		{"hexThickness", s.HexThickness},
	}
	for _, c := range checks {
		if err := positive(c.name, c.v); err != nil {
			return err
		}
	}

	if s.PinCount <= 0 {
		return fmt.Errorf("pinCount must be positive, got %d: %w", s.PinCount, ErrInvalidParameter)
	}
	if s.BayonetTabCount <= 0 {
		return fmt.Errorf("bayonetTabCount must be positive, got %d: %w", s.BayonetTabCount, ErrInvalidParameter)
	}
	if s.BayonetRotationAngle >= 360/float64(s.BayonetTabCount) {
		return fmt.Errorf("bayonetRotationAngle %g collides with the next tab at %g: %w",
			s.BayonetRotationAngle, 360/float64(s.BayonetTabCount), ErrInvalidParameter)
	}

	// The thread stack must nest: bore inside thread inside boss.
	if s.DrainBoreDiameter >= s.ThreadMajorDiameter {
		return fmt.Errorf("drainBoreDiameter %g must be smaller than threadDiameter %g: %w",
			s.DrainBoreDiameter, s.ThreadMajorDiameter, ErrInvalidParameter)
	}
	if s.ThreadMajorDiameter >= s.BossOuterDiameter {
		return fmt.Errorf("threadDiameter %g must be smaller than bossOuterDiameter %g: %w",
			s.ThreadMajorDiameter, s.BossOuterDiameter, ErrInvalidParameter)
	}
	// The groove guard band stops one pitch fraction short of the thread
	// length, so the thread may exceed the boss depth by up to a pitch.
	if s.ThreadLength > s.BossLength+s.WallThickness+s.ThreadPitch {
		return fmt.Errorf("threadLength %g exceeds boss depth %g: %w",
			s.ThreadLength, s.BossLength+s.WallThickness, ErrInvalidParameter)
	}

	// Shell geometry must leave an interior.
	minDim := s.BoxLength
	if s.BoxWidth < minDim {
		minDim = s.BoxWidth
	}
	if s.BoxHeight < minDim {
		minDim = s.BoxHeight
	}
	if s.WallThickness >= minDim/2 {
		return fmt.Errorf("wallThickness %g leaves no interior in a %gx%gx%g box: %w",
			s.WallThickness, s.BoxLength, s.BoxWidth, s.BoxHeight, ErrInvalidParameter)
	}
	footprintMin := s.BoxLength
	if s.BoxWidth < footprintMin {
		footprintMin = s.BoxWidth
	}
	if s.FilletRadius >= footprintMin/2 {
		return fmt.Errorf("filletRadius %g exceeds half the smallest footprint dimension %g: %w",
			s.FilletRadius, footprintMin/2, ErrInvalidParameter)
	}

	// The drain hole must clear the box bottom.
	if s.DrainCenterHeight()-s.DrainHoleDiameter/2 < 0 {
		return fmt.Errorf("drain hole extends below the box bottom: %w", ErrInvalidParameter)
	}
	if s.DrainCenterHeight()+s.DrainHoleDiameter/2 >= s.BoxHeight {
		return fmt.Errorf("drain hole does not fit a %gmm tall box: %w", s.BoxHeight, ErrInvalidParameter)
	}

	switch s.Position {
	case PositionLeft, PositionRight, PositionRear:
	default:
		return fmt.Errorf("position %q: %w", s.Position, ErrUnknownPosition)
	}

	return nil
}
