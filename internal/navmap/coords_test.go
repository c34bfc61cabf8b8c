package navmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/overworld/core/internal/vmath"
	"github.com/stretchr/testify/assert"
)

func TestWorldToPixelFlipsY(t *testing.T) {
	p := Projection{Extent: Extent{X: 1, Y: 1}, W: 4, H: 4}
	assert.Equal(t, Pixel{X: 0, Y: 3}, p.WorldToPixel(vmath.V3(-0.4, -0.4, 0)))
	assert.Equal(t, Pixel{X: 3, Y: 0}, p.WorldToPixel(vmath.V3(0.4, 0.4, 0)))
	assert.Equal(t, Pixel{X: 0, Y: 0}, p.WorldToPixel(vmath.V3(-9, 9, 0)), "outside the extent clamps")
}

func TestPixelRoundTrip(t *testing.T) {
	p := Projection{Extent: Extent{X: 200, Y: 100}, W: 33, H: 17}
	for _, v := range []vmath.Vec3{
		{X: 0, Y: 0}, {X: -99, Y: 49}, {X: 71.3, Y: -12.9}, {X: 100, Y: -50},
	} {
		px := p.WorldToPixel(v)
		assert.Equal(t, px, p.WorldToPixel(p.PixelToWorld(px, 0)))
		assert.Equal(t, p.TileCentre(v), p.PixelToWorld(px, v.Z))
	}
}

func TestSinglePixelMap(t *testing.T) {
	p := Projection{Extent: Extent{X: 10, Y: 10}, W: 1, H: 1}
	assert.Equal(t, Pixel{}, p.WorldToPixel(vmath.V3(3, 3, 0)))
	assert.Equal(t, vmath.Vec3{}, p.PixelToWorld(Pixel{}, 0))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Blocked, Classify(RGB{0xFF, 0xFF, 0xFF}))
	assert.Equal(t, Sea, Classify(RGB{0, 0, 0xFF}))
	assert.Equal(t, Mountain, Classify(RGB{0x77, 0x77, 0x77}))
	assert.Equal(t, HighMountain, Classify(RGB{0x33, 0x33, 0x33}))
	assert.Equal(t, Forest, Classify(RGB{0, 0xFF, 0}))
	assert.Equal(t, Neutral, Classify(RGB{0x12, 0x34, 0x56}))
	assert.Equal(t, Area(1<<5), HighMountain)
}

func TestParseMask(t *testing.T) {
	mask, bad := ParseMask([]string{"Sea", "neutral", "lava"})
	assert.Equal(t, Sea|Neutral, mask)
	assert.Equal(t, []string{"lava"}, bad)
	assert.Equal(t, "neutral|sea", mask.String())
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 11))
	src.Set(11, 10, color.RGBA{0, 0, 0xFF, 0xFF})
	img := FromImage(src)
	w, h := img.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, RGB{0, 0, 0xFF}, img.RGBAt(1, 0))
	assert.Equal(t, RGB{}, img.RGBAt(0, 0))
}
