package paint

import "fmt"

// Tool is the active paint tool.
type Tool int

const (
	// ToolSpray appends jittered splats around each dab.
	ToolSpray Tool = iota
	// ToolPaint recolors picked splats toward the brush color.
	ToolPaint
	// ToolEraser fades picked splats toward transparent.
	ToolEraser
	// ToolShape places a whole primitive at pointer-down.
	ToolShape
)

var toolNames = [...]string{"spray", "paint", "eraser", "shape"}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool parses a tool name.
func ParseTool(s string) (Tool, error) {
	for i, name := range toolNames {
		if name == s {
			return Tool(i), nil
		}
	}
	return ToolSpray, fmt.Errorf("paint: unknown tool %q", s)
}

// Mode selects how a pointer position becomes a world position.
type Mode int

const (
	// ModePlane intersects the pointer ray with the placement plane.
	ModePlane Mode = iota
	// ModeDepth unprojects the depth already drawn under the pointer.
	ModeDepth
)

func (m Mode) String() string {
	switch m {
	case ModePlane:
		return "plane"
	case ModeDepth:
		return "depth"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "plane" or "depth".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "plane":
		return ModePlane, nil
	case "depth":
		return ModeDepth, nil
	}
	return ModePlane, fmt.Errorf("paint: unknown mode %q", s)
}

// ShapeKind is a primitive placed by the shape tool.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapeTube
	ShapePlane
)

var shapeNames = [...]string{"sphere", "box", "tube", "plane"}

func (k ShapeKind) String() string {
	if k >= 0 && int(k) < len(shapeNames) {
		return shapeNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// ParseShape parses a shape name.
func ParseShape(s string) (ShapeKind, error) {
	for i, name := range shapeNames {
		if name == s {
			return ShapeKind(i), nil
		}
	}
	return ShapeSphere, fmt.Errorf("paint: unknown shape %q", s)
}
