package params

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("default set failed validation: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Set)
		wantErr error
	}{
		{
			"zero box length",
			func(s *Set) { s.BoxLength = 0 },
			ErrInvalidParameter,
		},
		{
			"negative wall",
			func(s *Set) { s.WallThickness = -1 },
			ErrInvalidParameter,
		},
		{
			"bore swallows thread",
			func(s *Set) { s.DrainBoreDiameter = 16 },
			ErrInvalidParameter,
		},
		{
			"thread swallows boss",
			func(s *Set) { s.ThreadMajorDiameter = 22.4 },
			ErrInvalidParameter,
		},
		{
			"thread longer than boss depth",
			func(s *Set) { s.ThreadLength = 25 },
			ErrInvalidParameter,
		},
		{
			"wall leaves no interior",
			func(s *Set) { s.WallThickness = 80 },
			ErrInvalidParameter,
		},
		{
			"fillet exceeds footprint",
			func(s *Set) { s.FilletRadius = 90 },
			ErrInvalidParameter,
		},
		{
			"drain hole taller than box",
			func(s *Set) { s.BoxHeight = 10 },
			ErrInvalidParameter,
		},
		{
			"zero pin count",
			func(s *Set) { s.PinCount = 0 },
			ErrInvalidParameter,
		},
		{
			"zero tab count",
			func(s *Set) { s.BayonetTabCount = 0 },
			ErrInvalidParameter,
		},
		{
			"rotation collides with next tab",
			func(s *Set) { s.BayonetRotationAngle = 120 },
			ErrInvalidParameter,
		},
		{
			"unknown position",
			func(s *Set) { s.Position = "top" },
			ErrUnknownPosition,
		},
		{
			"empty position",
			func(s *Set) { s.Position = "" },
			ErrUnknownPosition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDerivedDimensions(t *testing.T) {
	s := Default()

	if got, want := s.DrainCenterHeight(), 13.5; got != want {
		t.Errorf("DrainCenterHeight() = %g, want %g", got, want)
	}
	if got, want := s.SealRingOuterDiameter(), 21.2; math.Abs(got-want) > 1e-9 {
		t.Errorf("SealRingOuterDiameter() = %g, want %g", got, want)
	}
	if got, want := s.SealRingInnerDiameter(), 19.2; got != want {
		t.Errorf("SealRingInnerDiameter() = %g, want %g", got, want)
	}
	if got, want := s.SealRingThickness(), 2.0; got != want {
		t.Errorf("SealRingThickness() = %g, want %g", got, want)
	}
	if got, want := s.CapOuterDiameter(), 14.2; math.Abs(got-want) > 1e-9 {
		t.Errorf("CapOuterDiameter() = %g, want %g", got, want)
	}
}

func TestResolvePositions(t *testing.T) {
	tests := []struct {
		name        string
		position    Position
		wantDrain   [3]float64
		wantOutward [3]float64
		wantRot     [3]float64
		wantAlongX  bool
		wantRun     float64
	}{
		{
			"left",
			PositionLeft,
			[3]float64{-100, 0, -61.5},
			[3]float64{-1, 0, 0},
			[3]float64{0, 90, 0},
			true,
			192,
		},
		{
			"right",
			PositionRight,
			[3]float64{100, 0, -61.5},
			[3]float64{1, 0, 0},
			[3]float64{0, -90, 0},
			true,
			192,
		},
		{
			"rear",
			PositionRear,
			[3]float64{0, -75, -61.5},
			[3]float64{0, -1, 0},
			[3]float64{-90, 0, 0},
			false,
			142,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			s.Position = tt.position
			f, err := Resolve(&s)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			got := [3]float64{f.DrainX, f.DrainY, f.DrainZ}
			if got != tt.wantDrain {
				t.Errorf("drain center = %v, want %v", got, tt.wantDrain)
			}
			if f.Outward != tt.wantOutward {
				t.Errorf("outward = %v, want %v", f.Outward, tt.wantOutward)
			}
			if f.InstallRotation != tt.wantRot {
				t.Errorf("install rotation = %v, want %v", f.InstallRotation, tt.wantRot)
			}
			if f.SlopeAlongX != tt.wantAlongX {
				t.Errorf("slopeAlongX = %v, want %v", f.SlopeAlongX, tt.wantAlongX)
			}
			if f.SlopeRun != tt.wantRun {
				t.Errorf("slope run = %g, want %g", f.SlopeRun, tt.wantRun)
			}
		})
	}
}

func TestResolveFloorHeights(t *testing.T) {
	s := Default()
	f, err := Resolve(&s)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// The floor's low end aligns with the bottom of the drain hole:
	// drain center minus hole radius.
	wantLow := -150.0/2 + 13.5 - 8.5
	if math.Abs(f.FloorLowZ-wantLow) > 1e-9 {
		t.Errorf("FloorLowZ = %g, want %g", f.FloorLowZ, wantLow)
	}

	wantRise := 192 * math.Tan(2*math.Pi/180)
	if math.Abs(f.SlopeRise-wantRise) > 1e-9 {
		t.Errorf("SlopeRise = %g, want %g", f.SlopeRise, wantRise)
	}
	if math.Abs(f.FloorHighZ-(wantLow+wantRise)) > 1e-9 {
		t.Errorf("FloorHighZ = %g, want %g", f.FloorHighZ, wantLow+wantRise)
	}

	// The rise only depends on the run, not the drain position.
	s2 := Default()
	s2.Position = PositionRight
	f2, err := Resolve(&s2)
	if err != nil {
		t.Fatalf("Resolve(right) error = %v", err)
	}
	if f2.SlopeRise != f.SlopeRise {
		t.Errorf("right rise %g != left rise %g", f2.SlopeRise, f.SlopeRise)
	}
}

func TestFrameSlopeEnds(t *testing.T) {
	tests := []struct {
		name     string
		position Position
		wantLow  float64
	}{
		{"left drain low end at -X", PositionLeft, -96},
		{"right drain low end at +X", PositionRight, 96},
		{"rear drain low end at -Y", PositionRear, -71},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			s.Position = tt.position
			f, err := Resolve(&s)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got := f.LowEnd(); got != tt.wantLow {
				t.Errorf("LowEnd() = %g, want %g", got, tt.wantLow)
			}
			if got := f.HighEnd(); got != -tt.wantLow {
				t.Errorf("HighEnd() = %g, want %g", got, -tt.wantLow)
			}
		})
	}
}

func TestResolveRejectsInvalidSet(t *testing.T) {
	s := Default()
	s.Position = "bottom"
	if _, err := Resolve(&s); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("Resolve() error = %v, want ErrUnknownPosition", err)
	}
}
