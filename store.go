package splat

import "github.com/chewxy/math32"

// NoSlot is returned by Add when the store is full.
const NoSlot = -1

// Store is a fixed-capacity columnar point cloud laid out for direct GPU
// upload. Every column has capacity elements (times its component count);
// only slots [0, Count) hold meaningful data.
//
// Store also owns the grouped undo log: StartStroke/EndStroke bracket one
// user-visible action, and Undo reverts the most recent action.
//
// Store is not safe for concurrent use. All calls are expected to come from
// the single thread that handles input and drives rendering.
type Store struct {
	capacity int
	count    int

	pos  []float32 // xyz
	col  []float32 // rgb
	opa  []float32
	size []float32
	tag  []uint32

	history *undoLog
	stroke  *activeStroke

	revision uint64
}

// NewStore allocates a store. See WithCapacity and WithHistoryDepth.
func NewStore(opts ...StoreOption) *Store {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		capacity: o.capacity,
		pos:      make([]float32, o.capacity*3),
		col:      make([]float32, o.capacity*3),
		opa:      make([]float32, o.capacity),
		size:     make([]float32, o.capacity),
		tag:      make([]uint32, o.capacity),
		history:  newUndoLog(o.historyDepth),
	}
	Logger().Info("splat: store created",
		"capacity", o.capacity,
		"history_depth", o.historyDepth)
	return s
}

// Capacity returns the fixed number of slots.
func (s *Store) Capacity() int { return s.capacity }

// Count returns the number of live splats.
func (s *Store) Count() int { return s.count }

// Remaining returns the number of free slots.
func (s *Store) Remaining() int { return s.capacity - s.count }

// Revision increases on every call that changes what a renderer would
// draw. Renderers compare it with the revision they last uploaded.
func (s *Store) Revision() uint64 { return s.revision }

// Add appends one splat and returns its slot, or NoSlot when the store is
// full. A full store drops the splat silently.
func (s *Store) Add(sp Splat) int {
	if s.count >= s.capacity {
		Logger().Debug("splat: store full, splat dropped", "capacity", s.capacity)
		return NoSlot
	}
	i := s.count
	s.write(i, sp)
	s.count++
	s.revision++
	return i
}

// AddMany appends as many splats as fit, in order, and returns how many
// were stored. The rest are dropped.
func (s *Store) AddMany(splats []Splat) int {
	n := min(len(splats), s.capacity-s.count)
	for i := 0; i < n; i++ {
		s.write(s.count+i, splats[i])
	}
	s.count += n
	if n > 0 {
		s.revision++
	}
	if dropped := len(splats) - n; dropped > 0 {
		Logger().Debug("splat: store full, splats dropped",
			"dropped", dropped,
			"capacity", s.capacity)
	}
	return n
}

func (s *Store) write(i int, sp Splat) {
	s.pos[i*3+0] = float32(sp.Position.X)
	s.pos[i*3+1] = float32(sp.Position.Y)
	s.pos[i*3+2] = float32(sp.Position.Z)
	s.col[i*3+0] = sp.Color.R
	s.col[i*3+1] = sp.Color.G
	s.col[i*3+2] = sp.Color.B
	s.opa[i] = sp.Opacity
	s.size[i] = sp.Size
	s.tag[i] = uint32(i)
}

// Splat returns the splat in slot i. The second result is false when i is
// outside [0, Count).
func (s *Store) Splat(i int) (Splat, bool) {
	if !s.valid(i) {
		return Splat{}, false
	}
	return Splat{
		Position: Vec3{
			X: float64(s.pos[i*3]),
			Y: float64(s.pos[i*3+1]),
			Z: float64(s.pos[i*3+2]),
		},
		Color:   RGB{R: s.col[i*3], G: s.col[i*3+1], B: s.col[i*3+2]},
		Opacity: s.opa[i],
		Size:    s.size[i],
	}, true
}

func (s *Store) valid(i int) bool {
	return i >= 0 && i < s.count
}

// Paint blends the color of each slot toward target:
// new = old + (target - old) * strength. strength is clamped to [0, 1].
// Slots outside [0, Count) are skipped.
func (s *Store) Paint(slots []int, target RGB, strength float32) {
	strength = clamp01(strength)
	touched := false
	for _, i := range slots {
		if !s.valid(i) {
			continue
		}
		s.captureSlot(i)
		c := s.col[i*3 : i*3+3 : i*3+3]
		blended := RGB{c[0], c[1], c[2]}.Lerp(target, strength)
		c[0], c[1], c[2] = blended.R, blended.G, blended.B
		touched = true
	}
	if touched {
		s.revision++
	}
}

// Erase lowers the opacity of each slot by strength (clamped to [0, 1]).
// Opacity never drops below zero. Slots outside [0, Count) are skipped.
func (s *Store) Erase(slots []int, strength float32) {
	strength = clamp01(strength)
	touched := false
	for _, i := range slots {
		if !s.valid(i) {
			continue
		}
		s.captureSlot(i)
		s.opa[i] = math32.Max(0, s.opa[i]-strength)
		touched = true
	}
	if touched {
		s.revision++
	}
}

// captureSlot records slot i's pre-stroke state when an edit stroke is
// active. It must run before the slot is mutated.
func (s *Store) captureSlot(i int) {
	if s.stroke == nil || s.stroke.capture == nil {
		return
	}
	s.stroke.capture.capture(s, i)
}

// StartStroke begins a stroke. An add stroke records the current count in
// the undo log immediately; an edit stroke starts an empty capture.
//
// Starting a stroke while another is active discards the previous stroke's
// uncommitted capture.
func (s *Store) StartStroke(kind StrokeKind) {
	if s.stroke != nil && s.stroke.capture != nil && s.stroke.capture.len() > 0 {
		Logger().Debug("splat: active edit stroke discarded",
			"slots", s.stroke.capture.len())
	}

	switch kind {
	case StrokeAdd:
		s.stroke = &activeStroke{kind: StrokeAdd}
		s.pushCommand(command{kind: commandAppend, count: s.count})
	default:
		s.stroke = &activeStroke{kind: StrokeEdit, capture: newEditCapture()}
	}
}

// EndStroke finishes the active stroke. An edit stroke that touched at
// least one slot becomes one undo-log entry. No-op without an active
// stroke.
func (s *Store) EndStroke() {
	if s.stroke == nil {
		return
	}
	if c := s.stroke.capture; c != nil && c.len() > 0 {
		s.pushCommand(c.command())
		Logger().Debug("splat: edit stroke committed", "slots", c.len())
	}
	s.stroke = nil
}

// StrokeActive reports whether a stroke is in progress.
func (s *Store) StrokeActive() bool {
	return s.stroke != nil
}

func (s *Store) pushCommand(c command) {
	if s.history.push(c) {
		Logger().Debug("splat: undo log full, oldest stroke discarded",
			"depth", s.history.limit)
	}
}

// HistoryLen returns the number of strokes that can be undone.
func (s *Store) HistoryLen() int {
	return s.history.len()
}

// Undo reverts the most recent stroke and reports whether there was one.
// An add stroke is reverted by truncating the count (slot contents are not
// zeroed); an edit stroke restores each captured slot's color and opacity.
// Undo is not itself undoable.
func (s *Store) Undo() bool {
	c, ok := s.history.pop()
	if !ok {
		return false
	}

	switch c.kind {
	case commandAppend:
		s.count = min(c.count, s.count)
	case commandEdit:
		for k, i := range c.slots {
			s.col[i*3+0] = c.colors[k*3+0]
			s.col[i*3+1] = c.colors[k*3+1]
			s.col[i*3+2] = c.colors[k*3+2]
			s.opa[i] = c.opacities[k]
		}
	}
	s.revision++
	return true
}

// Clear empties the store and discards the undo log. Nothing before Clear
// can be undone afterwards.
func (s *Store) Clear() {
	s.count = 0
	s.history.reset()
	s.revision++
}

// Positions returns the xyz column for slots [0, Count).
// The slice aliases the store and is invalidated by the next mutating call.
func (s *Store) Positions() []float32 { return s.pos[: s.count*3 : s.count*3] }

// Colors returns the rgb column for slots [0, Count).
func (s *Store) Colors() []float32 { return s.col[: s.count*3 : s.count*3] }

// Opacities returns the opacity column for slots [0, Count).
func (s *Store) Opacities() []float32 { return s.opa[:s.count:s.count] }

// Sizes returns the radius column for slots [0, Count).
func (s *Store) Sizes() []float32 { return s.size[:s.count:s.count] }

// Tags returns the per-slot tag column for slots [0, Count). A slot's tag
// equals its index.
func (s *Store) Tags() []uint32 { return s.tag[:s.count:s.count] }
