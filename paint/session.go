// Package paint turns pointer input into splat store edits.
//
// A Session owns the mapping from a pointer event to world space (a
// placement plane or the depth already drawn), resamples pointer motion
// through a splat.Brush, and dispatches each dab to the active tool:
//
//	s, _ := paint.NewSession(store, config.Default())
//	s.PointerDown(x, y, cam)
//	s.PointerMove(x2, y2, cam)
//	s.PointerUp()
//
// Paint and eraser tools, and depth mode, need a Picker holding the ID and
// depth targets of the last rendered frame.
//
// Session is not safe for concurrent use.
package paint

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/config"
)

// Option configures a Session.
type Option func(*Session)

// WithPicker sets the picker used by depth mode and the edit tools.
func WithPicker(p Picker) Option {
	return func(s *Session) {
		s.picker = p
	}
}

// WithRand sets the random source used for spray jitter and shapes.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// Session is the paint controller for one store.
type Session struct {
	store    *splat.Store
	brush    *splat.Brush
	picker   Picker
	rng      *rand.Rand
	settings config.Settings

	tool  Tool
	mode  Mode
	shape ShapeKind
	axis  splat.Axis
	dab   Brush

	// strokeTool is the tool the open stroke started with. It fixes the
	// store stroke kind until PointerUp, whatever Apply changes meanwhile.
	strokeTool Tool
	painting   bool
	strokeID   uuid.UUID
}

// NewSession creates a session painting into store. The settings are
// copied; later changes go through Apply.
func NewSession(store *splat.Store, settings *config.Settings, opts ...Option) (*Session, error) {
	s := &Session{
		store: store,
		brush: splat.NewBrush(splat.DefaultSpacing),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Apply(settings); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply replaces the session settings. Invalid settings are rejected and
// the current ones are kept. A stroke in progress continues with the new
// brush parameters; a tool change takes effect at the next PointerDown.
func (s *Session) Apply(settings *config.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	// Validation guarantees the names parse.
	tool, _ := ParseTool(settings.Tool)
	mode, _ := ParseMode(settings.Mode)
	shape, _ := ParseShape(settings.Shape)

	s.settings = *settings
	s.tool, s.mode, s.shape = tool, mode, shape
	s.axis = settings.Axis()
	s.brush.Spacing = settings.Brush.Spacing
	s.dab = Brush{
		Color:   settings.RGB(),
		Opacity: float32(settings.Brush.Opacity),
		Size:    float32(settings.Brush.Size),
		Radius:  settings.Brush.Radius,
		Density: settings.Brush.Density,
	}
	return nil
}

// Settings returns a copy of the current settings, including changes made
// by SelectPlane and SelectDepthMode.
func (s *Session) Settings() config.Settings { return s.settings }

// Store returns the store the session edits.
func (s *Session) Store() *splat.Store { return s.store }

// SetPicker replaces the picker.
func (s *Session) SetPicker(p Picker) { s.picker = p }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Mode returns the active placement mode.
func (s *Session) Mode() Mode { return s.mode }

// Painting reports whether a stroke is in progress.
func (s *Session) Painting() bool { return s.painting }

// StrokeID returns the identifier of the current or most recent stroke,
// or uuid.Nil before the first PointerDown. Shape placements get one too.
func (s *Session) StrokeID() uuid.UUID { return s.strokeID }

// PointerDown begins a stroke at pixel (x, y). It reports whether the
// store changed.
//
// The shape tool places its whole primitive here as a single add stroke
// and does not continue on move.
func (s *Session) PointerDown(x, y float64, cam Camera) bool {
	if s.painting {
		s.PointerUp()
	}
	s.strokeID = uuid.New()
	s.strokeTool = s.tool

	if s.strokeTool == ToolShape {
		return s.placeShape(x, y, cam)
	}

	s.painting = true
	if s.strokeTool == ToolSpray {
		s.store.StartStroke(splat.StrokeAdd)
	} else {
		s.store.StartStroke(splat.StrokeEdit)
	}
	splat.Logger().Debug("paint: stroke started",
		"stroke", s.strokeID,
		"tool", s.strokeTool.String(),
		"mode", s.mode.String())
	return s.apply(x, y, cam)
}

// PointerMove continues the current stroke. It does nothing when no
// stroke is in progress.
func (s *Session) PointerMove(x, y float64, cam Camera) bool {
	if !s.painting {
		return false
	}
	return s.apply(x, y, cam)
}

// PointerUp commits the current stroke.
func (s *Session) PointerUp() {
	if !s.painting {
		return
	}
	s.painting = false
	s.store.EndStroke()
	s.brush.End()
	splat.Logger().Debug("paint: stroke committed",
		"stroke", s.strokeID,
		"count", s.store.Count(),
		"history", s.store.HistoryLen())
}

// Cursor returns the world point under the pointer using the active mode,
// without changing anything.
func (s *Session) Cursor(x, y float64, cam Camera) (splat.Vec3, bool) {
	return s.locate(x, y, cam)
}

// SelectPlane switches to plane mode on the given axis.
func (s *Session) SelectPlane(axis splat.Axis) {
	s.mode = ModePlane
	s.axis = axis
	s.settings.Mode = ModePlane.String()
	s.settings.PlaneAxis = axis.String()
}

// SelectDepthMode switches to depth mode.
func (s *Session) SelectDepthMode() {
	s.mode = ModeDepth
	s.settings.Mode = ModeDepth.String()
}

// Undo reverts the most recent committed stroke.
func (s *Session) Undo() bool {
	return s.store.Undo()
}

// Clear empties the store and its history.
func (s *Session) Clear() {
	s.store.Clear()
}

// locate maps a pixel to world space: a ray/plane intersection in plane
// mode, or an unprojected depth sample in depth mode.
func (s *Session) locate(x, y float64, cam Camera) (splat.Vec3, bool) {
	if s.mode == ModeDepth {
		if s.picker == nil {
			return splat.Vec3{}, false
		}
		d, ok := s.picker.Depth(int(math.Floor(x)), int(math.Floor(y)))
		if !ok || !splat.SurfaceDepth(d) {
			return splat.Vec3{}, false
		}
		return cam.Unproject(x, y, d), true
	}

	ray, ok := cam.Ray(x, y)
	if !ok {
		return splat.Vec3{}, false
	}
	return ray.IntersectPlane(s.axis, s.settings.PlaneOffset)
}

func (s *Session) apply(x, y float64, cam Camera) bool {
	p, ok := s.locate(x, y, cam)
	if !ok {
		return false
	}

	if s.strokeTool == ToolSpray {
		added := 0
		for dab := range s.brush.Continue(p) {
			added += s.store.AddMany(Spray(dab, s.dab, s.rng))
		}
		return added > 0
	}

	dabs := 0
	for range s.brush.Continue(p) {
		dabs++
	}
	if dabs == 0 {
		return false
	}
	return s.edit(x, y, cam)
}

// edit recolors or erases the splats under the pick window once per event.
func (s *Session) edit(x, y float64, cam Camera) bool {
	if s.picker == nil {
		return false
	}
	r := splat.PickRect(x, y, splat.PickRadiusPixels(s.dab.Radius)).Intersect(cam.Width, cam.Height)
	if r.Empty() {
		return false
	}
	slots := splat.UniqueSlots(s.picker.IDs(r))
	if len(slots) == 0 {
		return false
	}

	before := s.store.Revision()
	strength := float32(s.settings.Brush.EditStrength)
	if s.strokeTool == ToolEraser {
		s.store.Erase(slots, strength)
	} else {
		s.store.Paint(slots, s.dab.Color, strength)
	}
	return s.store.Revision() != before
}

func (s *Session) placeShape(x, y float64, cam Camera) bool {
	p, ok := s.locate(x, y, cam)
	if !ok {
		return false
	}
	splats := GenerateShape(s.shape, p, s.dab.Radius, s.dab.Color,
		s.dab.Opacity, s.dab.Size, float64(s.dab.Density), s.rng)

	s.store.StartStroke(splat.StrokeAdd)
	n := s.store.AddMany(splats)
	s.store.EndStroke()

	splat.Logger().Debug("paint: shape placed",
		"stroke", s.strokeID,
		"shape", s.shape.String(),
		"added", n)
	return n > 0
}
