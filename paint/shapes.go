package paint

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/splat"
)

// GenerateShape scatters floor(density*100) splats over the surface of a
// primitive centred at center:
//
//   - sphere: uniform over a sphere of the given radius
//   - box: uniform over a random face of the cube with half-extent radius
//   - tube: an open cylinder of the given radius and height 2·radius
//   - plane: a square of side 2·radius in XZ
//
// All splats share color, opacity and size.
func GenerateShape(kind ShapeKind, center splat.Vec3, radius float64, color splat.RGB,
	opacity, size float32, density float64, rng *rand.Rand) []splat.Splat {
	count := int(math.Floor(density * 100))
	if count <= 0 {
		return nil
	}

	out := make([]splat.Splat, 0, count)
	for range count {
		out = append(out, splat.Splat{
			Position: center.Add(shapePoint(kind, radius, rng)),
			Color:    color,
			Opacity:  opacity,
			Size:     size,
		})
	}
	return out
}

func shapePoint(kind ShapeKind, r float64, rng *rand.Rand) splat.Vec3 {
	switch kind {
	case ShapeBox:
		face := rng.IntN(6)
		a := rng.Float64()*2 - 1
		b := rng.Float64()*2 - 1
		switch face {
		case 0:
			return splat.V3(r, a*r, b*r)
		case 1:
			return splat.V3(-r, a*r, b*r)
		case 2:
			return splat.V3(a*r, r, b*r)
		case 3:
			return splat.V3(a*r, -r, b*r)
		case 4:
			return splat.V3(a*r, b*r, r)
		default:
			return splat.V3(a*r, b*r, -r)
		}

	case ShapeTube:
		theta := rng.Float64() * 2 * math.Pi
		h := (rng.Float64() - 0.5) * r * 2
		return splat.V3(r*math.Cos(theta), h, r*math.Sin(theta))

	case ShapePlane:
		return splat.V3((rng.Float64()-0.5)*r*2, 0, (rng.Float64()-0.5)*r*2)

	default:
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*rng.Float64() - 1)
		return splat.V3(
			r*math.Sin(phi)*math.Cos(theta),
			r*math.Sin(phi)*math.Sin(theta),
			r*math.Cos(phi),
		)
	}
}
