package scene

import (
	"image"
	"image/color"
	"math"

	"microct/geometry"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"
)

// Canvas draws world space primitives through a Camera into an RGBA image.
// Primitives are painted in call order; there is no depth buffer.
type Canvas struct {
	img *image.RGBA
	cam Camera
}

func NewCanvas(cam Camera, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, cam.Width, cam.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{img: img, cam: cam}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Camera() Camera { return c.cam }

// Line draws the segment a-b, width pixels thick.
func (c *Canvas) Line(a, b mgl64.Vec3, col color.RGBA, width int) {
	ca, cb, ok := clipNear(c.cam.Clip(a), c.cam.Clip(b))
	if !ok {
		return
	}
	x0, y0 := c.cam.Screen(ca)
	x1, y1 := c.cam.Screen(cb)

	margin := float64(width)
	r := rect{-margin, -margin, float64(c.cam.Width) + margin, float64(c.cam.Height) + margin}
	if x0, y0, x1, y1, ok = r.clip(x0, y0, x1, y1); !ok {
		return
	}

	p0 := geometry.Point{X: int(math.Round(x0)), Y: int(math.Round(y0))}
	p1 := geometry.Point{X: int(math.Round(x1)), Y: int(math.Round(y1))}
	geometry.StepLine(p0, p1, func(p geometry.Point) {
		c.dot(p, col, width)
	})
}

// dot paints a width x width square centred on p.
func (c *Canvas) dot(p geometry.Point, col color.RGBA, width int) {
	if width <= 1 {
		c.img.SetRGBA(p.X, p.Y, col)
		return
	}
	lo := -(width - 1) / 2
	for dy := lo; dy < lo+width; dy++ {
		for dx := lo; dx < lo+width; dx++ {
			c.img.SetRGBA(p.X+dx, p.Y+dy, col)
		}
	}
}

// Polygon fills a convex polygon. It is skipped when any corner is behind
// the camera.
func (c *Canvas) Polygon(pts []mgl64.Vec3, col color.RGBA) {
	if len(pts) < 3 {
		return
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range pts {
		var ok bool
		if xs[i], ys[i], ok = c.cam.Project(p); !ok {
			return
		}
		minY = min(minY, ys[i])
		maxY = max(maxY, ys[i])
	}

	y0 := max(int(math.Floor(minY)), 0)
	y1 := min(int(math.Ceil(maxY)), c.cam.Height-1)
	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		left, right := math.Inf(1), math.Inf(-1)
		for i := range pts {
			j := (i + 1) % len(pts)
			ya, yb := ys[i], ys[j]
			if (sy < ya) == (sy < yb) {
				continue
			}
			x := xs[i] + (sy-ya)/(yb-ya)*(xs[j]-xs[i])
			left = min(left, x)
			right = max(right, x)
		}
		if left > right {
			continue
		}
		xa := max(int(math.Ceil(left-0.5)), 0)
		xb := min(int(math.Floor(right-0.5)), c.cam.Width-1)
		for x := xa; x <= xb; x++ {
			c.img.SetRGBA(x, y, col)
		}
	}
}

type rect struct {
	minX, minY, maxX, maxY float64
}

// clip is Liang-Barsky line clipping.
func (r rect) clip(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - r.minX},
		{dx, r.maxX - x0},
		{-dy, y0 - r.minY},
		{dy, r.maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
