package geometry

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Circle struct {
		Out    string `help:"Destination CSV file" default:"write_bresenham.csv"`
		Center string `help:"Circle centre as x,y" default:"0,0"`
		Radius int    `help:"Circle radius" default:"20"`
	} `cmd:"" help:"Write a Bresenham circle"`
	Line struct {
		Out  string `help:"Destination CSV file" default:"write_incremental_dda.csv"`
		From string `help:"Start point as x,y" required:""`
		To   string `help:"End point as x,y" required:""`
	} `cmd:"" help:"Write an incremental DDA line, e.g. a source or detector array"`

	Center Point `kong:"-"`
	From   Point `kong:"-"`
	To     Point `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error
	switch kctx.Selected().Name {
	case "circle":
		if c.Circle.Radius < 0 {
			return fmt.Errorf("invalid radius: %d", c.Circle.Radius)
		}
		if c.Center, err = ParsePoint(c.Circle.Center); err != nil {
			return fmt.Errorf("invalid centre: %w", err)
		}
	case "line":
		if c.From, err = ParsePoint(c.Line.From); err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
		if c.To, err = ParsePoint(c.Line.To); err != nil {
			return fmt.Errorf("invalid end: %w", err)
		}
	}
	return nil
}

func (c *CLICmd) Run(kctx *kong.Context) error {
	var out string
	var pts Points
	switch kctx.Selected().Name {
	case "circle":
		out, pts = c.Circle.Out, Circle(c.Center, c.Circle.Radius)
	case "line":
		out, pts = c.Line.Out, Line(c.From, c.To)
	default:
		return fmt.Errorf("unsupported operation: %s", kctx.Selected().Name)
	}

	if err := Save(out, pts); err != nil {
		return err
	}
	slog.Info("wrote points", "file", out, "count", len(pts))
	return nil
}
