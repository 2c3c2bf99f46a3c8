package scene

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"microct/parallel"
)

// Filter selects how texels are sampled.
type Filter int

const (
	Nearest Filter = iota
	Linear
)

func ParseFilter(s string) (Filter, error) {
	switch s {
	case "nearest":
		return Nearest, nil
	case "linear":
		return Linear, nil
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

// PlaneScene is a texture stretched over the quad [-Width, Width] x
// [-Height, Height] in the z = 0 plane. Texture coordinate (0, 0) is the
// bottom left corner of the picture and sits at (-Width, -Height).
type PlaneScene struct {
	Texture image.Image
	Width   float64
	Height  float64
	Filter  Filter
}

// Draw fills the quad, then the axes over it. Rows are split over pool.
func (s *PlaneScene) Draw(c *Canvas, pool *parallel.Pool) {
	if s.Texture != nil && s.Width > 0 && s.Height > 0 {
		pool.Rows(c.cam.Height, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := range c.cam.Width {
					if col, ok := s.sample(c.cam, float64(x)+0.5, float64(y)+0.5); ok {
						c.img.SetRGBA(x, y, col)
					}
				}
			}
		})
	}
	drawAxes(c, axisLength, 2, true)
}

// sample intersects the line of sight through pixel (x, y) with the plane.
func (s *PlaneScene) sample(cam Camera, x, y float64) (color.RGBA, bool) {
	near, far := cam.Ray(x, y)
	dz := near.Z() - far.Z()
	if dz == 0 {
		return color.RGBA{}, false
	}
	t := near.Z() / dz
	if t < 0 || t > 1 {
		return color.RGBA{}, false
	}
	p := near.Add(far.Sub(near).Mul(t))
	if math.Abs(p.X()) > s.Width || math.Abs(p.Y()) > s.Height {
		return color.RGBA{}, false
	}

	u := (p.X() + s.Width) / (2 * s.Width)
	v := (p.Y() + s.Height) / (2 * s.Height)
	return Sample(s.Texture, u, v, s.Filter), true
}

// Sample reads tex at texture coordinates (u, v), v = 0 being the bottom
// row, clamping to the edge.
func Sample(tex image.Image, u, v float64, f Filter) color.RGBA {
	b := tex.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	tx := u * w
	ty := (1 - v) * h

	if f == Nearest {
		return texel(tex, int(math.Floor(tx)), int(math.Floor(ty)))
	}

	tx -= 0.5
	ty -= 0.5
	x0, y0 := math.Floor(tx), math.Floor(ty)
	fx, fy := tx-x0, ty-y0
	ix, iy := int(x0), int(y0)

	c00 := texel(tex, ix, iy)
	c10 := texel(tex, ix+1, iy)
	c01 := texel(tex, ix, iy+1)
	c11 := texel(tex, ix+1, iy+1)
	lerp := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-fx) + float64(b)*fx
		bottom := float64(c)*(1-fx) + float64(d)*fx
		return uint8(math.Round(top*(1-fy) + bottom*fy))
	}
	return color.RGBA{
		R: lerp(c00.R, c10.R, c01.R, c11.R),
		G: lerp(c00.G, c10.G, c01.G, c11.G),
		B: lerp(c00.B, c10.B, c01.B, c11.B),
		A: lerp(c00.A, c10.A, c01.A, c11.A),
	}
}

// texel reads the pixel at (x, y) relative to the bounds' origin, clamped
// into the image.
func texel(tex image.Image, x, y int) color.RGBA {
	b := tex.Bounds()
	x = min(max(x, 0), b.Dx()-1)
	y = min(max(y, 0), b.Dy()-1)
	return color.RGBAModel.Convert(tex.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
}
