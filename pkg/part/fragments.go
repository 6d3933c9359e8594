package part

import "github.com/chazu/groundbox/pkg/kernel"

// resolveFragments enforces the single-solid invariant after a boolean
// sequence. A disconnected result is not an error: the largest fragment
// is the part, the rest are artifacts of cuts that split slivers off,
// and they are discarded with a warning so the report never hides them.
func (b *Builder) resolveFragments(name string, s kernel.Solid) kernel.Solid {
	fragments := b.Kernel.Fragments(s)
	if len(fragments) <= 1 {
		return s
	}
	b.Log.Warn("discarding disconnected fragments",
		"part", name, "kept", 1, "discarded", len(fragments)-1)
	return fragments[0]
}
