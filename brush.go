package splat

import (
	"iter"
	"math"
)

// DefaultSpacing is the default distance between dabs, in world units.
const DefaultSpacing = 0.05

// Brush resamples raw pointer positions into evenly spaced dabs, so that
// paint density does not depend on pointer sampling rate or speed.
//
// Brush keeps only the last raw position of the current stroke; it knows
// nothing about the Store or the undo log.
//
// Example:
//
//	b := splat.NewBrush(0.05)
//	for dab := range b.Continue(p) {
//	    store.AddMany(spray(dab))
//	}
//	b.End()
type Brush struct {
	// Spacing is the distance between consecutive dabs. Values <= 0 are
	// treated as DefaultSpacing.
	Spacing float64

	last    Vec3
	hasLast bool
}

// NewBrush creates a Brush with the given dab spacing.
func NewBrush(spacing float64) *Brush {
	return &Brush{Spacing: spacing}
}

func (b *Brush) spacing() float64 {
	if b.Spacing <= 0 || math.IsNaN(b.Spacing) {
		return DefaultSpacing
	}
	return b.Spacing
}

// Continue feeds the next raw position and returns the dabs it produces.
//
// The first position of a stroke is itself the first dab. After that, a
// move shorter than Spacing yields no dabs; otherwise floor(d/Spacing)
// dabs are placed at k*Spacing/d (k = 1..steps) along the segment from the
// last position, and the last position becomes p. The sub-spacing
// remainder of a segment is therefore not carried into the next one.
//
// The brush state is updated before Continue returns, whether or not the
// sequence is consumed.
func (b *Brush) Continue(p Vec3) iter.Seq[Vec3] {
	if !b.hasLast {
		b.last, b.hasLast = p, true
		return func(yield func(Vec3) bool) {
			yield(p)
		}
	}

	spacing := b.spacing()
	from := b.last
	dist := from.Distance(p)
	if dist < spacing {
		return func(func(Vec3) bool) {}
	}

	steps := int(math.Floor(dist / spacing))
	b.last = p
	return func(yield func(Vec3) bool) {
		for k := 1; k <= steps; k++ {
			if !yield(from.Lerp(p, float64(k)*spacing/dist)) {
				return
			}
		}
	}
}

// Active reports whether a stroke is in progress, i.e. the next Continue
// will not be treated as the first point.
func (b *Brush) Active() bool {
	return b.hasLast
}

// End finishes the stroke. The next Continue starts a new one.
func (b *Brush) End() {
	b.hasLast = false
	b.last = Vec3{}
}
