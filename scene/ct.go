package scene

import (
	"image/color"

	"microct/geometry"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// world units per point array unit
	dotSize = 5

	axisLength = 500
	boxSize    = 200
	gridExtent = 1000
	gridStep   = 5
	outerRect  = 128
	innerRect  = 60
)

var (
	red     = color.RGBA{0xff, 0, 0, 0xff}
	green   = color.RGBA{0, 0xff, 0, 0xff}
	blue    = color.RGBA{0, 0, 0xff, 0xff}
	yellow  = color.RGBA{0xff, 0xff, 0, 0xff}
	purple  = color.RGBA{0xff, 0, 0xff, 0xff}
	gray    = color.RGBA{0x80, 0x80, 0x80, 0xff}
	grid    = color.RGBA{50, 250, 150, 0xff}
	rayTint = color.RGBA{100, 25, 25, 0xff}
	black   = color.RGBA{0, 0, 0, 0xff}
)

// landmarks mark the quadrants of the point array plane.
var landmarks = geometry.Points{{X: 5, Y: 5}, {X: -5, Y: 5}, {X: -5, Y: -5}, {X: 5, Y: -5}}

// CTScene is the light source and detector layout. Point arrays lie in the
// y = 0 plane, their Y mapped to world Z.
type CTScene struct {
	Source   geometry.Points
	Detector geometry.Points
	Circle   geometry.Points
}

// Draw paints the scene in the order the viewer did: axes, box, grid,
// rectangles, dots and finally the source to detector rays.
func (s *CTScene) Draw(c *Canvas, q Quality) {
	drawAxes(c, axisLength, 2, false)
	drawBox(c, boxSize, q)
	drawGrid(c, gridExtent, gridStep)
	drawRectangle(c, outerRect, outerRect, yellow, 4)
	drawRectangle(c, innerRect, innerRect, purple, 4)

	for _, set := range []geometry.Points{landmarks, s.Circle, s.Source, s.Detector} {
		for _, p := range set {
			drawDot(c, p)
		}
	}

	for _, r := range geometry.Pair(s.Source, s.Detector) {
		c.Line(arrayPoint(r.Source), arrayPoint(r.Detector), rayTint, 9)
	}
}

func arrayPoint(p geometry.Point) mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X * dotSize), 0, float64(p.Y * dotSize)}
}

func drawAxes(c *Canvas, length float64, width int, negative bool) {
	axes := []struct {
		dir mgl64.Vec3
		col color.RGBA
	}{
		{mgl64.Vec3{1, 0, 0}, red},
		{mgl64.Vec3{0, 1, 0}, green},
		{mgl64.Vec3{0, 0, 1}, blue},
	}
	for _, a := range axes {
		c.Line(mgl64.Vec3{}, a.dir.Mul(length), a.col, width)
		if negative {
			c.Line(mgl64.Vec3{}, a.dir.Mul(-length), a.col, width)
		}
	}
}

var cubeCorners = [8]mgl64.Vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var cubeFaces = [6][4]int{
	{0, 1, 2, 3}, {4, 5, 6, 7},
	{0, 1, 5, 4}, {3, 2, 6, 7},
	{0, 3, 7, 4}, {1, 2, 6, 5},
}

// drawBox draws a wire cube in draft quality and a solid one otherwise.
// Only faces turned towards the eye are filled.
func drawBox(c *Canvas, size float64, q Quality) {
	var corners [8]mgl64.Vec3
	for i, v := range cubeCorners {
		corners[i] = v.Mul(size / 2)
	}

	if q > Draft {
		eye := c.Camera().Eye
		for _, f := range cubeFaces {
			pts := []mgl64.Vec3{corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]}
			center := pts[0].Add(pts[1]).Add(pts[2]).Add(pts[3]).Mul(0.25)
			// the centre of the face is also its outward normal for a cube
			// around the origin
			if center.Dot(eye.Sub(center)) <= 0 {
				continue
			}
			c.Polygon(pts, shade(gray, center.Normalize(), eye.Sub(center).Normalize()))
		}
		return
	}

	for _, e := range cubeEdges {
		c.Line(corners[e[0]], corners[e[1]], gray, 1)
	}
}

// shade applies an ambient plus diffuse term, lit from the eye.
func shade(col color.RGBA, normal, light mgl64.Vec3) color.RGBA {
	k := 0.2 + 0.8*max(normal.Dot(light), 0)
	return color.RGBA{
		R: uint8(float64(col.R) * k),
		G: uint8(float64(col.G) * k),
		B: uint8(float64(col.B) * k),
		A: col.A,
	}
}

func drawGrid(c *Canvas, extent, step float64) {
	for v := -extent; v <= extent; v += step {
		c.Line(mgl64.Vec3{-extent, 0, v}, mgl64.Vec3{extent, 0, v}, grid, 1)
		c.Line(mgl64.Vec3{v, 0, -extent}, mgl64.Vec3{v, 0, extent}, grid, 1)
	}
}

// drawRectangle outlines x in [-halfX, halfX], z in [-halfZ, halfZ].
func drawRectangle(c *Canvas, halfZ, halfX float64, col color.RGBA, width int) {
	corners := [4]mgl64.Vec3{
		{-halfX, 0, -halfZ},
		{halfX, 0, -halfZ},
		{halfX, 0, halfZ},
		{-halfX, 0, halfZ},
	}
	for i := range corners {
		c.Line(corners[i], corners[(i+1)%4], col, width)
	}
}

// drawDot fills the dotSize square whose corner sits at the scaled point.
func drawDot(c *Canvas, p geometry.Point) {
	o := arrayPoint(p)
	c.Polygon([]mgl64.Vec3{
		o,
		o.Add(mgl64.Vec3{dotSize, 0, 0}),
		o.Add(mgl64.Vec3{dotSize, 0, dotSize}),
		o.Add(mgl64.Vec3{0, 0, dotSize}),
	}, yellow)
}
