// Package config loads and validates paint session settings.
//
// Settings are the explicit configuration passed by pointer into a paint
// session: tool, placement mode, brush parameters and store sizing. They are
// stored as YAML and can be hot-reloaded with Watch.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/splat"
)

// ErrInvalid is returned (wrapped) when settings fail validation.
var ErrInvalid = errors.New("config: invalid settings")

// Settings is the complete configuration of a paint session.
type Settings struct {
	// Tool is one of spray, paint, eraser, shape.
	Tool string `yaml:"tool" validate:"oneof=spray paint eraser shape"`

	// Shape is the primitive placed by the shape tool.
	Shape string `yaml:"shape" validate:"oneof=sphere box tube plane"`

	// Mode selects placement on a plane or on existing geometry (depth).
	Mode string `yaml:"mode" validate:"oneof=plane depth"`

	// PlaneAxis and PlaneOffset define the placement plane axis = offset.
	PlaneAxis   string  `yaml:"plane_axis" validate:"oneof=x y z none"`
	PlaneOffset float64 `yaml:"plane_offset"`

	// Color is the brush color as #RGB or #RRGGBB.
	Color string `yaml:"color" validate:"hexcolor"`

	Brush BrushSettings `yaml:"brush"`
	Store StoreSettings `yaml:"store"`
}

// BrushSettings holds the per-dab parameters.
type BrushSettings struct {
	// Size is the radius of each sprayed splat, in world units.
	Size float64 `yaml:"size" validate:"gte=0.01,lte=0.5"`

	// Radius is the spray dispersion radius in world units. It also sets
	// the pick window for paint/eraser and the shape tool radius.
	Radius float64 `yaml:"radius" validate:"gte=0.05,lte=1"`

	// Density is the number of splats sprayed per dab.
	Density int `yaml:"density" validate:"gte=1,lte=20"`

	// Opacity of sprayed splats.
	Opacity float64 `yaml:"opacity" validate:"gte=0.1,lte=1"`

	// Spacing is the distance between dabs along a stroke.
	Spacing float64 `yaml:"spacing" validate:"gt=0"`

	// EditStrength is the per-dab strength of the paint and eraser tools.
	EditStrength float64 `yaml:"edit_strength" validate:"gt=0,lte=1"`
}

// StoreSettings sizes the splat store.
type StoreSettings struct {
	Capacity     int `yaml:"capacity" validate:"gt=0"`
	HistoryDepth int `yaml:"history_depth" validate:"gte=0"`
}

var validate = validator.New()

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		Tool:        "spray",
		Shape:       "sphere",
		Mode:        "plane",
		PlaneAxis:   "y",
		PlaneOffset: 0,
		Color:       "#ff0088",
		Brush: BrushSettings{
			Size:         0.05,
			Radius:       0.2,
			Density:      4,
			Opacity:      0.5,
			Spacing:      splat.DefaultSpacing,
			EditStrength: 0.1,
		},
		Store: StoreSettings{
			Capacity:     300_000,
			HistoryDepth: splat.DefaultHistoryDepth,
		},
	}
}

// Validate checks every field against its allowed range.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := splat.ParseHex(s.Color); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// RGB returns the parsed brush color.
func (s *Settings) RGB() splat.RGB {
	return splat.Hex(s.Color)
}

// Axis returns the parsed placement plane axis.
func (s *Settings) Axis() splat.Axis {
	a, _ := splat.ParseAxis(s.PlaneAxis)
	return a
}

// StoreOptions returns the store options these settings describe.
func (s *Settings) StoreOptions() []splat.StoreOption {
	return []splat.StoreOption{
		splat.WithCapacity(s.Store.Capacity),
		splat.WithHistoryDepth(s.Store.HistoryDepth),
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
// Fields missing from data keep their default values.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and validates a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s as YAML, creating the parent directory if needed.
func Save(path string, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
