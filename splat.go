package splat

// Splat is a single point-cloud sample.
//
// A splat has no identity of its own: once stored it is addressed only by
// its slot index, which stays valid until an operation shrinks the live
// count (undo of an append, Clear).
type Splat struct {
	// Position is the world-space center.
	Position Vec3

	// Color is the normalized RGB color.
	Color RGB

	// Opacity is in [0, 1].
	Opacity float32

	// Size is the world-space radius.
	Size float32
}
