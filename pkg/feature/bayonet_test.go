package feature

import (
	"math"
	"testing"
)

func defaultBayonet() Bayonet {
	return Bayonet{
		ShaftDiameter: 14,
		TabCount:      3,
		TabHeight:     3,
		TabLength:     6,
		TabProtrusion: 1.35,
		RotationAngle: 60,
		SlotWidth:     3.5,
		SlotVertical:  6,
		LockDepth:     3,
		ArcMargin:     10,
		ArcStep:       3,
	}
}

func TestBayonetAngles(t *testing.T) {
	b := defaultBayonet()

	wantTabs := []float64{0, 120, 240}
	wantEntries := []float64{60, 180, 300}
	for i := 0; i < b.TabCount; i++ {
		if got := b.TabAngle(i); got != wantTabs[i] {
			t.Errorf("TabAngle(%d) = %g, want %g", i, got, wantTabs[i])
		}
		if got := b.EntryAngle(i); got != wantEntries[i] {
			t.Errorf("EntryAngle(%d) = %g, want %g", i, got, wantEntries[i])
		}
	}
}

func TestBayonetLockArc(t *testing.T) {
	b := defaultBayonet()

	// Arc 0 serves the tab at 0 degrees through the entry slot at 60:
	// it spans the rotation range plus the margin on both ends.
	start, end := b.LockArc(0)
	if start != -10 || end != 70 {
		t.Errorf("LockArc(0) = [%g, %g], want [-10, 70]", start, end)
	}
}

func TestBayonetRoundTrip(t *testing.T) {
	// Inserting a tab through its entry slot and twisting by the
	// rotation angle must land it inside the lock arc, for any tab
	// count and any rotation short of the next tab.
	tests := []struct {
		name     string
		tabCount int
		rotation float64
	}{
		{"three tabs at 60", 3, 60},
		{"two tabs at 90", 2, 90},
		{"four tabs at 45", 4, 45},
		{"single tab", 1, 120},
		{"small rotation", 3, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := defaultBayonet()
			b.TabCount = tt.tabCount
			b.RotationAngle = tt.rotation

			for i := 0; i < b.TabCount; i++ {
				entry := b.EntryAngle(i)

				// At the entry angle the tab is inside the arc's open end.
				if !b.InLockArc(i, entry) {
					t.Errorf("tab %d at entry angle %g not inside lock arc", i, entry)
				}
				// Rotating back by the rotation angle seats it at the
				// closed end.
				locked := entry - b.RotationAngle
				if !b.InLockArc(i, locked) {
					t.Errorf("tab %d at locked angle %g not inside lock arc", i, locked)
				}
				// Halfway through the twist stays engaged.
				if !b.InLockArc(i, entry-b.RotationAngle/2) {
					t.Errorf("tab %d mid-rotation not inside lock arc", i)
				}
				// Just past the closed end plus margin is outside.
				if b.InLockArc(i, locked-b.ArcMargin-1) {
					t.Errorf("tab %d past the closed end still inside lock arc", i)
				}
			}
		})
	}
}

func TestBayonetInLockArcWrapsAround(t *testing.T) {
	b := defaultBayonet()

	// Arc 0 spans [-10, 70]; -5 normalizes to 355 and must still hit.
	if !b.InLockArc(0, 355) {
		t.Error("angle 355 should fall in arc [-10, 70]")
	}
	if b.InLockArc(0, 180) {
		t.Error("angle 180 should not fall in arc [-10, 70]")
	}
}

func TestBayonetTabRadius(t *testing.T) {
	b := defaultBayonet()
	want := 14.0/2 + 1.35/2
	if got := b.tabRadius(); math.Abs(got-want) > 1e-9 {
		t.Errorf("tabRadius() = %g, want %g", got, want)
	}
}
