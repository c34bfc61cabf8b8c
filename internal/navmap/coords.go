package navmap

import (
	"math"

	"github.com/overworld/core/internal/vmath"
)

// Extent is the world-space width and height covered by the navmap.
type Extent struct {
	X, Y float64
}

// Pixel is a tile coordinate; row 0 is the northern edge.
type Pixel struct {
	X, Y int
}

// Projection converts between world positions and tiles of a W×H navmap.
type Projection struct {
	Extent Extent
	W, H   int
}

// WorldToPixel projects a world position onto its tile. y is flipped so that
// north (+y) maps towards row 0. Positions outside the extent clamp to the
// border tile.
func (p Projection) WorldToPixel(v vmath.Vec3) Pixel {
	px := math.Round((v.X/p.Extent.X + 0.5) * float64(p.W-1))
	py := math.Round((0.5 - v.Y/p.Extent.Y) * float64(p.H-1))
	return Pixel{X: clamp(int(px), p.W-1), Y: clamp(int(py), p.H-1)}
}

// PixelToWorld returns the world position of a tile's centre at height z.
func (p Projection) PixelToWorld(px Pixel, z float64) vmath.Vec3 {
	return vmath.Vec3{
		X: (ratio(px.X, p.W) - 0.5) * p.Extent.X,
		Y: (0.5 - ratio(px.Y, p.H)) * p.Extent.Y,
		Z: z,
	}
}

// TileCentre snaps v to the centre of the tile containing it.
func (p Projection) TileCentre(v vmath.Vec3) vmath.Vec3 {
	return p.PixelToWorld(p.WorldToPixel(v), v.Z)
}

func ratio(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
