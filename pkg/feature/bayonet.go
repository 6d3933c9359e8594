package feature

import (
	"math"

	"github.com/chazu/groundbox/pkg/kernel"
)

// Bayonet describes the twist-lock coupling between the scraper shaft
// and the lid socket. Tabs on the shaft enter vertical slots in the
// socket and rotate into horizontal lock arcs. Entry slots sit
// RotationAngle ahead of the tabs so that inserting and twisting by
// RotationAngle seats each tab at the closed end of its arc.
type Bayonet struct {
	ShaftDiameter float64
	TabCount      int
	TabHeight     float64 // tangential thickness of the tab block
	TabLength     float64 // axial extent of the tab block
	TabProtrusion float64 // radial extension beyond the shaft
	RotationAngle float64 // degrees from entry to locked
	SlotWidth     float64
	SlotVertical  float64 // entry slot depth along the axis
	LockDepth     float64 // axial height of the lock arc

	// ArcMargin extends the lock arc past both ends for rotation
	// clearance; ArcStep is the angular spacing of the cut segments.
	ArcMargin float64
	ArcStep   float64
}

// TabAngle returns the angular position of tab i.
func (b Bayonet) TabAngle(i int) float64 {
	return float64(i) * 360.0 / float64(b.TabCount)
}

// EntryAngle returns the angular position of the entry slot serving
// tab i.
func (b Bayonet) EntryAngle(i int) float64 {
	return b.TabAngle(i) + b.RotationAngle
}

// LockArc returns the angular interval [start, end] of the lock arc for
// tab i, including the clearance margin on both ends. The locked tab
// position is at start + ArcMargin; the entry slot is at end - ArcMargin.
func (b Bayonet) LockArc(i int) (start, end float64) {
	entry := b.EntryAngle(i)
	return entry - b.RotationAngle - b.ArcMargin, entry + b.ArcMargin
}

// normalizeAngle maps an angle into [0, 360).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// InLockArc reports whether a tab rotated to the given angle lies
// inside lock arc i, treating angles circularly.
func (b Bayonet) InLockArc(i int, angle float64) bool {
	start, end := b.LockArc(i)
	span := end - start
	offset := normalizeAngle(angle - start)
	return offset <= span
}

// tabRadius is the radial center of the tab and slot blocks.
func (b Bayonet) tabRadius() float64 {
	return b.ShaftDiameter/2 + b.TabProtrusion/2
}

// AddTabs unions the lock tabs onto a shaft. Local frame: shaft axis
// +Z, shaft base at z=0; tabs sit centered at the entry slot depth so
// they clear the slot and land in the lock arc.
func (b Bayonet) AddTabs(k kernel.Kernel, shaft kernel.Solid) kernel.Solid {
	r := b.tabRadius()
	for i := 0; i < b.TabCount; i++ {
		tab := k.Box(b.TabProtrusion, b.TabHeight, b.TabLength)
		tab = k.Rotate(tab, 0, 0, b.TabAngle(i))
		a := b.TabAngle(i) * math.Pi / 180
		tab = k.Translate(tab, r*math.Cos(a), r*math.Sin(a), b.SlotVertical)
		shaft = k.Union(shaft, tab)
	}
	return shaft
}

// CutSocket cuts the socket cavity, entry slots and lock arcs into a
// body. zBase is the z of the socket mouth (recess underside) in the
// body's frame; the cavity extends upward by socketDepth.
func (b Bayonet) CutSocket(k kernel.Kernel, body kernel.Solid, socketDiameter, socketDepth, zBase float64) kernel.Solid {
	socket := k.Cylinder(socketDepth, socketDiameter/2)
	socket = k.Translate(socket, 0, 0, zBase+socketDepth/2)
	body = k.Difference(body, socket)

	r := b.tabRadius()
	for i := 0; i < b.TabCount; i++ {
		entry := b.EntryAngle(i)

		// Vertical entry slot, oriented tangentially.
		slot := k.Box(b.TabProtrusion+0.2, b.SlotWidth, b.SlotVertical)
		slot = k.Rotate(slot, 0, 0, entry)
		a := entry * math.Pi / 180
		slot = k.Translate(slot, r*math.Cos(a), r*math.Sin(a), zBase+b.SlotVertical/2)
		body = k.Difference(body, slot)

		// Horizontal lock arc, swept as axis-aligned segments.
		arcZ := zBase + b.SlotVertical - b.LockDepth/2
		start, end := b.LockArc(i)
		for deg := start; deg <= end; deg += b.ArcStep {
			rad := deg * math.Pi / 180
			seg := k.Box(b.TabProtrusion+0.6, b.SlotWidth, b.LockDepth)
			seg = k.Translate(seg, r*math.Cos(rad), r*math.Sin(rad), arcZ)
			body = k.Difference(body, seg)
		}
	}
	return body
}
