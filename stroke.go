package splat

import "fmt"

// StrokeKind selects how a stroke is grouped in the undo log.
type StrokeKind int

const (
	// StrokeAdd groups appended splats. Undo truncates the live count.
	StrokeAdd StrokeKind = iota

	// StrokeEdit groups Paint and Erase calls. Undo restores the color and
	// opacity each touched slot had before the stroke began.
	StrokeEdit
)

// String returns the stroke kind name.
func (k StrokeKind) String() string {
	switch k {
	case StrokeAdd:
		return "add"
	case StrokeEdit:
		return "edit"
	default:
		return fmt.Sprintf("StrokeKind(%d)", int(k))
	}
}

// activeStroke bridges StartStroke and EndStroke.
// capture is nil for add strokes.
type activeStroke struct {
	kind    StrokeKind
	capture *editCapture
}

// editCapture accumulates the pre-stroke color and opacity of every slot
// touched during an edit stroke. The first capture of a slot wins; later
// touches in the same stroke never overwrite it.
type editCapture struct {
	index     map[int]int // slot -> position in slots
	slots     []int
	colors    []float32 // 3 per slot
	opacities []float32
}

func newEditCapture() *editCapture {
	return &editCapture{index: make(map[int]int)}
}

// capture records slot's current state if it has not been seen in this
// stroke.
func (c *editCapture) capture(s *Store, slot int) {
	if _, seen := c.index[slot]; seen {
		return
	}
	c.index[slot] = len(c.slots)
	c.slots = append(c.slots, slot)
	c.colors = append(c.colors, s.col[slot*3], s.col[slot*3+1], s.col[slot*3+2])
	c.opacities = append(c.opacities, s.opa[slot])
}

// len returns the number of distinct slots captured.
func (c *editCapture) len() int {
	return len(c.slots)
}

// command converts the accumulator into an undo-log entry.
func (c *editCapture) command() command {
	return command{
		kind:      commandEdit,
		slots:     c.slots,
		colors:    c.colors,
		opacities: c.opacities,
	}
}
