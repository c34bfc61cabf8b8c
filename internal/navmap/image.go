package navmap

import "image"

// Image is the view of a navmap the pathfinder needs.
type Image interface {
	Size() (w, h int)
	RGBAt(x, y int) RGB
}

type stdImage struct {
	img image.Image
}

// FromImage adapts a decoded image.Image. Pixel (0, 0) is the image's
// top-left corner regardless of its Bounds origin.
func FromImage(img image.Image) Image {
	return stdImage{img: img}
}

func (s stdImage) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s stdImage) RGBAt(x, y int) RGB {
	b := s.img.Bounds()
	r, g, bl, _ := s.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
}

// Grid is an in-memory Image, handy for generated maps and tests.
type Grid struct {
	W, H int
	Pix  []RGB // row-major, len W*H
}

// NewGrid returns a w×h grid filled with fill.
func NewGrid(w, h int, fill RGB) *Grid {
	g := &Grid{W: w, H: h, Pix: make([]RGB, w*h)}
	for i := range g.Pix {
		g.Pix[i] = fill
	}
	return g
}

func (g *Grid) Size() (int, int) { return g.W, g.H }

func (g *Grid) RGBAt(x, y int) RGB { return g.Pix[y*g.W+x] }

func (g *Grid) Set(x, y int, c RGB) { g.Pix[y*g.W+x] = c }
