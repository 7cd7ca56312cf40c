package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/paint"
)

// Script is a recorded paint session: a camera and a list of steps.
type Script struct {
	Camera CameraSpec `yaml:"camera"`
	Steps  []Step     `yaml:"steps" validate:"dive"`
}

// CameraSpec describes a perspective camera.
type CameraSpec struct {
	Eye    [3]float64 `yaml:"eye"`
	Target [3]float64 `yaml:"target"`
	FovY   float64    `yaml:"fov" validate:"gt=0,lt=180"` // degrees
	Width  int        `yaml:"width" validate:"gt=0"`
	Height int        `yaml:"height" validate:"gt=0"`
}

// Step is one scripted action. Settings fields apply before the stroke;
// Points, when present, form one pointer-down/move/up stroke.
type Step struct {
	Tool  string `yaml:"tool,omitempty" validate:"omitempty,oneof=spray paint eraser shape"`
	Shape string `yaml:"shape,omitempty" validate:"omitempty,oneof=sphere box tube plane"`
	Color string `yaml:"color,omitempty" validate:"omitempty,hexcolor"`
	Plane string `yaml:"plane,omitempty" validate:"omitempty,oneof=x y z none"`
	Depth bool   `yaml:"depth,omitempty"`
	Undo  int    `yaml:"undo,omitempty" validate:"gte=0"`
	Clear bool   `yaml:"clear,omitempty"`

	// Points are pixel coordinates with a top-left origin.
	Points [][2]float64 `yaml:"points,omitempty"`
}

var scriptValidate = validator.New()

func defaultCamera() CameraSpec {
	return CameraSpec{
		Eye:    [3]float64{0, 4, 6},
		Target: [3]float64{0, 0, 0},
		FovY:   60,
		Width:  800,
		Height: 600,
	}
}

// parseScript decodes and validates a script. A missing camera block
// uses defaultCamera.
func parseScript(data []byte) (*Script, error) {
	s := &Script{Camera: defaultCamera()}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := scriptValidate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return s, nil
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return parseScript(data)
}

func (c CameraSpec) camera() paint.Camera {
	return paint.NewCamera(
		splat.V3(c.Eye[0], c.Eye[1], c.Eye[2]),
		splat.V3(c.Target[0], c.Target[1], c.Target[2]),
		c.FovY*math.Pi/180,
		c.Width, c.Height)
}
