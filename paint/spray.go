package paint

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/splat"
)

// Spray returns density splats scattered around a dab.
//
// Positions are uniform over a disc of the given radius in the XZ plane
// (the square root of a uniform sample gives the distance from the centre)
// with a small Y jitter of ±0.1·radius. Each size is the brush size scaled
// by a uniform factor in [0.8, 1.2).
func Spray(dab splat.Vec3, b Brush, rng *rand.Rand) []splat.Splat {
	out := make([]splat.Splat, 0, max(b.Density, 0))
	for range b.Density {
		theta := rng.Float64() * 2 * math.Pi
		rr := math.Sqrt(rng.Float64()) * b.Radius
		out = append(out, splat.Splat{
			Position: splat.Vec3{
				X: dab.X + math.Cos(theta)*rr,
				Y: dab.Y + (rng.Float64()-0.5)*b.Radius*0.2,
				Z: dab.Z + math.Sin(theta)*rr,
			},
			Color:   b.Color,
			Opacity: b.Opacity,
			Size:    b.Size * float32(0.8+rng.Float64()*0.4),
		})
	}
	return out
}

// Brush is the resolved per-dab brush of a session.
type Brush struct {
	Color   splat.RGB
	Opacity float32
	Size    float32
	Radius  float64
	Density int
}
