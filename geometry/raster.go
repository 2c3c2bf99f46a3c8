package geometry

import "math"

// Circle returns the midpoint (Bresenham) circle of radius r around c,
// walked counter-clockwise from (c.X+r, c.Y) without repeated points.
func Circle(c Point, r int) Points {
	if r < 0 {
		return nil
	}
	if r == 0 {
		return Points{c}
	}

	// first octant, from (r, 0) up to the diagonal
	var arc []Point
	x, y, d := r, 0, 1-r
	for x >= y {
		arc = append(arc, Point{x, y})
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}

	octants := [8]func(Point) Point{
		func(p Point) Point { return Point{p.X, p.Y} },
		func(p Point) Point { return Point{p.Y, p.X} },
		func(p Point) Point { return Point{-p.Y, p.X} },
		func(p Point) Point { return Point{-p.X, p.Y} },
		func(p Point) Point { return Point{-p.X, -p.Y} },
		func(p Point) Point { return Point{-p.Y, -p.X} },
		func(p Point) Point { return Point{p.Y, -p.X} },
		func(p Point) Point { return Point{p.X, -p.Y} },
	}

	seen := make(map[Point]struct{}, 8*len(arc))
	pts := make(Points, 0, 8*len(arc))
	add := func(p Point) {
		p = Point{c.X + p.X, c.Y + p.Y}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		pts = append(pts, p)
	}
	for i, f := range octants {
		// odd octants run backwards to keep the walk continuous
		if i%2 == 0 {
			for _, p := range arc {
				add(f(p))
			}
		} else {
			for j := len(arc) - 1; j >= 0; j-- {
				add(f(arc[j]))
			}
		}
	}
	return pts
}

// StepLine calls fn for every point of the DDA line from a to b, both ends
// included.
func StepLine(a, b Point, fn func(Point)) {
	dx, dy := b.X-a.X, b.Y-a.Y
	n := max(abs(dx), abs(dy))
	if n == 0 {
		fn(a)
		return
	}

	xinc := float64(dx) / float64(n)
	yinc := float64(dy) / float64(n)
	for i := range n + 1 {
		fn(Point{
			X: a.X + int(math.Round(xinc*float64(i))),
			Y: a.Y + int(math.Round(yinc*float64(i))),
		})
	}
}

// Line returns the DDA line from a to b.
func Line(a, b Point) Points {
	pts := make(Points, 0, max(abs(b.X-a.X), abs(b.Y-a.Y))+1)
	StepLine(a, b, func(p Point) {
		pts = append(pts, p)
	})
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
