// Package geometry holds the integer point arrays of the CT scene: the
// light source array, the detector array and the Bresenham circle.
package geometry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// ParsePoint reads "x,y".
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("invalid point %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, fmt.Errorf("invalid y in %q: %w", s, err)
	}
	return Point{x, y}, nil
}

type Points []Point

var csvHeader = []string{"x", "y"}

// ReadCSV reads a two column CSV file. The first record is a header and is
// discarded.
func ReadCSV(r io.Reader) (Points, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	var pts Points
	for {
		rec, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return pts, fmt.Errorf("could not read point %d: %w", len(pts), err)
		}

		var p Point
		if p.X, err = strconv.Atoi(rec[0]); err != nil {
			line, _ := cr.FieldPos(0)
			return pts, fmt.Errorf("line %d: invalid x: %w", line, err)
		}
		if p.Y, err = strconv.Atoi(rec[1]); err != nil {
			line, _ := cr.FieldPos(1)
			return pts, fmt.Errorf("line %d: invalid y: %w", line, err)
		}
		pts = append(pts, p)
	}

	return pts, nil
}

// WriteCSV writes pts with an x,y header.
func WriteCSV(w io.Writer, pts Points) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	rec := make([]string, 2)
	for i, p := range pts {
		rec[0] = strconv.Itoa(p.X)
		rec[1] = strconv.Itoa(p.Y)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("could not write point %d/%d: %w", i, len(pts), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads a point file.
func Load(path string) (Points, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open point file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close point file", "name", path, "error", closeErr)
		}
	}()

	pts, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("could not read point file %q: %w", path, err)
	}
	return pts, nil
}

// Save writes a point file, replacing any existing one.
func Save(path string, pts Points) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create point file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("could not close point file %q: %w", path, closeErr))
		}
	}()

	if err = WriteCSV(f, pts); err != nil {
		return fmt.Errorf("could not write point file %q: %w", path, err)
	}
	return nil
}

// Ray connects a light source element with its detector element.
type Ray struct {
	Source, Detector Point
}

// Pair connects element i of src with element i of det, stopping at the end
// of the shorter array.
func Pair(src, det Points) []Ray {
	n := min(len(src), len(det))
	rays := make([]Ray, n)
	for i := range n {
		rays[i] = Ray{src[i], det[i]}
	}
	return rays
}
