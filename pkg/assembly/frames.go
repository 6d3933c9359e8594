package assembly

import (
	"fmt"

	"github.com/chazu/groundbox/pkg/kernel"
	"github.com/chazu/groundbox/pkg/part"
)

// Frame is one stage of the assembly animation.
type Frame struct {
	Index int
	Name  string
	Solid kernel.Solid
}

// Approach distances for the animation stages, along the wall normal
// for drain parts and along z for the lid and scraper.
const (
	approachFar  = 30
	approachNear = 10
	lidDropHigh  = 50
	lidDropLow   = 25
	scraperRise  = 40
)

// AnimationFrames builds the 14-stage assembly sequence: seal ring and
// spout onto the drain, lid lowered onto the box, then the scraper
// raised into the socket and twisted locked. Every frame is a complete
// scene; exporting them in order yields the animation.
func (a *Assembler) AnimationFrames() ([]Frame, error) {
	k := a.b.Kernel

	box, err := a.b.Box()
	if err != nil {
		return nil, fmt.Errorf("animation box: %w", err)
	}
	box = k.Translate(box, 0, 0, a.b.Params.BoxHeight/2)

	ring, err := a.b.SealRing()
	if err != nil {
		return nil, fmt.Errorf("animation seal ring: %w", err)
	}
	spout, err := a.b.Spout()
	if err != nil {
		return nil, fmt.Errorf("animation spout: %w", err)
	}
	// The animation shows the detachable scraper locking into the lid,
	// so the lid carries the socket rather than the fused scraper.
	lid, err := a.b.Lid(false)
	if err != nil {
		return nil, fmt.Errorf("animation lid: %w", err)
	}
	scraper, err := a.b.Scraper(part.ScraperPrintedPins)
	if err != nil {
		return nil, fmt.Errorf("animation scraper: %w", err)
	}

	sealSeated := a.install(ring, 0)
	spoutSeated := a.install(spout, 0)
	lidSeated := k.Translate(lid, 0, 0, a.lidSeat())

	lidAt := func(drop float64) kernel.Solid {
		return k.Translate(lid, 0, 0, a.lidSeat()+drop)
	}
	// The scraper rises from inside the box into the socket, then
	// twists about its own axis to lock.
	scraperAt := func(rise, twist float64) kernel.Solid {
		s := scraper
		if twist != 0 {
			s = k.Rotate(s, 0, 0, twist)
		}
		return k.Translate(s, 0, 0, a.socketFloor()+rise)
	}

	frames := []Frame{
		{Name: "box", Solid: box},
		{Name: "seal_approaching", Solid: k.Union(box, a.install(ring, approachFar))},
		{Name: "seal_positioned", Solid: k.Union(box, sealSeated)},
	}

	withSeal := k.Union(box, sealSeated)
	frames = append(frames,
		Frame{Name: "spout_approaching", Solid: k.Union(withSeal, a.install(spout, approachFar))},
		Frame{Name: "spout_inserting", Solid: k.Union(withSeal, a.install(spout, approachNear))},
		Frame{Name: "spout_installed", Solid: k.Union(withSeal, spoutSeated)},
	)

	withSpout := k.Union(withSeal, spoutSeated)
	frames = append(frames,
		Frame{Name: "lid_approaching", Solid: k.Union(withSpout, lidAt(lidDropHigh))},
		Frame{Name: "lid_lowering", Solid: k.Union(withSpout, lidAt(lidDropLow))},
		Frame{Name: "lid_seated", Solid: k.Union(withSpout, lidSeated)},
	)

	withLid := k.Union(withSpout, lidSeated)
	frames = append(frames,
		Frame{Name: "scraper_approaching", Solid: k.Union(withLid, scraperAt(-scraperRise, 0))},
		Frame{Name: "scraper_aligning", Solid: k.Union(withLid, scraperAt(-scraperRise/2, 0))},
		Frame{Name: "scraper_inserted", Solid: k.Union(withLid, scraperAt(0, 0))},
		Frame{Name: "scraper_rotating_30", Solid: k.Union(withLid, scraperAt(0, 30))},
		Frame{Name: "scraper_locked", Solid: k.Union(withLid, scraperAt(0, 60))},
	)

	for i := range frames {
		frames[i].Index = i
	}
	return frames, nil
}
