package geometry

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	in := "x,y\n1,2\n-3, 4\n\n10,-20\n"
	pts, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := Points{{1, 2}, {-3, 4}, {10, -20}}
	if !slices.Equal(pts, want) {
		t.Fatalf("got %v, want %v", pts, want)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"bad x":        "x,y\n1,2\na,2\n",
		"bad y":        "x,y\n1,b\n",
		"three fields": "x,y\n1,2,3\n",
	}
	for name, in := range tests {
		if _, err := ReadCSV(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if _, err := ReadCSV(strings.NewReader("x,y\n1,2\na,2\n")); err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected line number in error, got %v", err)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	for _, in := range []string{"", "x,y\n"} {
		pts, err := ReadCSV(strings.NewReader(in))
		if err != nil || len(pts) != 0 {
			t.Errorf("ReadCSV(%q) = %v, %v", in, pts, err)
		}
	}
}

// More than the 1024 entries the fixed buffers used to hold.
func TestReadCSVLarge(t *testing.T) {
	pts := Circle(Point{}, 400)
	if len(pts) <= 1024 {
		t.Fatalf("circle too small for the test: %d points", len(pts))
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, pts); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "x,y\n") {
		t.Fatalf("missing header: %q", buf.String()[:10])
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !slices.Equal(got, pts) {
		t.Fatal("points differ after writing and reading back")
	}
}

func TestLoadSave(t *testing.T) {
	name := filepath.Join(t.TempDir(), "write_bresenham.csv")
	pts := Points{{0, 5}, {5, 0}}
	if err := Save(name, pts); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got, pts) {
		t.Fatalf("got %v, want %v", got, pts)
	}

	if _, err = Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint("-4, 7")
	if err != nil || p != (Point{-4, 7}) {
		t.Fatalf("got %v, %v", p, err)
	}
	for _, s := range []string{"", "1", "a,1", "1,b"} {
		if _, err := ParsePoint(s); err == nil {
			t.Errorf("ParsePoint(%q): expected error", s)
		}
	}
}

func TestCircle(t *testing.T) {
	for _, r := range []int{1, 2, 5, 16, 63} {
		c := Point{3, -2}
		pts := Circle(c, r)
		if len(pts) == 0 {
			t.Fatalf("r=%d: no points", r)
		}

		seen := map[Point]bool{}
		for _, p := range pts {
			if seen[p] {
				t.Fatalf("r=%d: duplicate point %v", r, p)
			}
			seen[p] = true

			dx, dy := p.X-c.X, p.Y-c.Y
			if e := dx*dx + dy*dy - r*r; abs(e) > r {
				t.Errorf("r=%d: point %v is %d off the circle", r, p, e)
			}
		}

		for _, p := range []Point{{c.X + r, c.Y}, {c.X, c.Y + r}, {c.X - r, c.Y}, {c.X, c.Y - r}} {
			if !seen[p] {
				t.Errorf("r=%d: missing axis point %v", r, p)
			}
		}
		if pts[0] != (Point{c.X + r, c.Y}) {
			t.Errorf("r=%d: walk starts at %v", r, pts[0])
		}

		// neighbours along the walk touch
		for i := 1; i < len(pts); i++ {
			if abs(pts[i].X-pts[i-1].X) > 1 || abs(pts[i].Y-pts[i-1].Y) > 1 {
				t.Errorf("r=%d: gap between %v and %v", r, pts[i-1], pts[i])
			}
		}
	}

	if got := Circle(Point{1, 1}, 0); !slices.Equal(got, Points{{1, 1}}) {
		t.Errorf("r=0: got %v", got)
	}
	if got := Circle(Point{}, -1); got != nil {
		t.Errorf("r=-1: got %v", got)
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		a, b Point
		want Points
	}{
		{Point{0, 0}, Point{0, 0}, Points{{0, 0}}},
		{Point{0, 0}, Point{3, 0}, Points{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{Point{0, 0}, Point{-2, -2}, Points{{0, 0}, {-1, -1}, {-2, -2}}},
		{Point{0, 0}, Point{1, 3}, Points{{0, 0}, {0, 1}, {1, 2}, {1, 3}}},
	}
	for _, tc := range tests {
		if got := Line(tc.a, tc.b); !slices.Equal(got, tc.want) {
			t.Errorf("Line(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}

	pts := Line(Point{-7, 11}, Point{40, -3})
	if len(pts) != 48 {
		t.Errorf("got %d points, want 48", len(pts))
	}
	if pts[0] != (Point{-7, 11}) || pts[len(pts)-1] != (Point{40, -3}) {
		t.Errorf("line does not reach its end points: %v .. %v", pts[0], pts[len(pts)-1])
	}
}

func TestPair(t *testing.T) {
	src := Points{{0, 0}, {1, 1}, {2, 2}}
	det := Points{{9, 9}, {8, 8}}
	rays := Pair(src, det)
	want := []Ray{{Point{0, 0}, Point{9, 9}}, {Point{1, 1}, Point{8, 8}}}
	if !slices.Equal(rays, want) {
		t.Fatalf("got %v, want %v", rays, want)
	}
}
