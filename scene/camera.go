package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	fieldOfView = 70
	zNear       = 0.1
	zFar        = 1000
)

// Eye is the camera position on a sphere of radius Distance around the
// origin, Elevation measured from +Y and Azimuth around it.
func (s *State) Eye() mgl64.Vec3 {
	th := mgl64.DegToRad(s.Azimuth)
	ph := mgl64.DegToRad(s.Elevation)
	return mgl64.Vec3{
		s.Distance * math.Cos(th) * math.Sin(ph),
		s.Distance * math.Cos(ph),
		s.Distance * math.Sin(th) * math.Sin(ph),
	}
}

// Camera looks from the eye at the origin, +Y up unless the eye is on the
// Y axis.
type Camera struct {
	Eye        mgl64.Vec3
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Width      int
	Height     int

	mvp mgl64.Mat4
	inv mgl64.Mat4
}

// up is +Y, except on the vertical axis where LookAt would degenerate.
// There it is the limit of the projected +Y as the elevation approaches
// 0 or 180 degrees.
func (s *State) up() mgl64.Vec3 {
	ph := mgl64.DegToRad(s.Elevation)
	if math.Abs(math.Sin(ph)) > 1e-6 {
		return mgl64.Vec3{0, 1, 0}
	}
	th := mgl64.DegToRad(s.Azimuth)
	dir := mgl64.Vec3{math.Cos(th), 0, math.Sin(th)}
	if math.Cos(ph) > 0 {
		return dir.Mul(-1)
	}
	return dir
}

// Camera builds the view and projection for a width x height viewport.
func (s *State) Camera(width, height int) Camera {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	eye := s.Eye()
	c := Camera{
		Eye:        eye,
		View:       mgl64.LookAtV(eye, mgl64.Vec3{}, s.up()),
		Projection: mgl64.Perspective(mgl64.DegToRad(fieldOfView), aspect, zNear, zFar),
		Width:      width,
		Height:     height,
	}
	c.mvp = c.Projection.Mul4(c.View)
	c.inv = c.mvp.Inv()
	return c
}

// Clip transforms a world point into clip space.
func (c Camera) Clip(p mgl64.Vec3) mgl64.Vec4 {
	return c.mvp.Mul4x1(p.Vec4(1))
}

// Screen maps a clip space point in front of the near plane to pixel
// coordinates, y growing downwards.
func (c Camera) Screen(v mgl64.Vec4) (x, y float64) {
	x = (v.X()/v.W() + 1) / 2 * float64(c.Width)
	y = (1 - v.Y()/v.W()) / 2 * float64(c.Height)
	return x, y
}

// Project returns the pixel position of p and whether p lies in front of
// the near plane.
func (c Camera) Project(p mgl64.Vec3) (x, y float64, ok bool) {
	v := c.Clip(p)
	if v.W() < zNear {
		return 0, 0, false
	}
	x, y = c.Screen(v)
	return x, y, true
}

// Ray returns the points where the line of sight through pixel (x, y)
// crosses the near and far planes.
func (c Camera) Ray(x, y float64) (near, far mgl64.Vec3) {
	nx := 2*x/float64(c.Width) - 1
	ny := 1 - 2*y/float64(c.Height)
	n := c.inv.Mul4x1(mgl64.Vec4{nx, ny, -1, 1})
	f := c.inv.Mul4x1(mgl64.Vec4{nx, ny, 1, 1})
	return n.Vec3().Mul(1 / n.W()), f.Vec3().Mul(1 / f.W())
}

// clipNear cuts the segment a-b at the near plane. It reports false when
// the whole segment is behind the camera.
func clipNear(a, b mgl64.Vec4) (mgl64.Vec4, mgl64.Vec4, bool) {
	aw, bw := a.W(), b.W()
	switch {
	case aw < zNear && bw < zNear:
		return a, b, false
	case aw < zNear:
		a = a.Add(b.Sub(a).Mul((zNear - aw) / (bw - aw)))
	case bw < zNear:
		b = b.Add(a.Sub(b).Mul((zNear - bw) / (aw - bw)))
	}
	return a, b, true
}
