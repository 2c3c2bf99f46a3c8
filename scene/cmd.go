package scene

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"microct/bmp"
	"microct/convert"
	"microct/geometry"
	"microct/parallel"

	"github.com/alecthomas/kong"
)

// RenderParams are shared by both viewers.
type RenderParams struct {
	Out       string  `help:"Destination folder for rendered frames" default:"frames"`
	Format    string  `help:"Frame image format" enum:"png,bmp,tiff,gif,jpeg" default:"png"`
	Frames    int     `help:"Number of frames to render, one camera step apart" default:"1"`
	Width     int     `help:"Frame width" default:"640"`
	Height    int     `help:"Frame height" default:"640"`
	Elevation float64 `help:"Camera angle from the vertical axis, in degrees" default:"60"`
	Azimuth   float64 `help:"Initial camera angle around the vertical axis, in degrees" default:"0"`
	NoSpin    bool    `help:"Keep the camera still between frames" default:"false"`
	Reverse   bool    `help:"Spin the camera the other way" default:"false"`
	Keys      string  `help:"Key strokes replayed before rendering (s: toggle spin, b: toggle bounce, q: quit)"`
}

func (p *RenderParams) validate() error {
	switch {
	case p.Frames < 1:
		return fmt.Errorf("invalid number of frames: %d", p.Frames)
	case p.Width < 1 || p.Height < 1:
		return fmt.Errorf("invalid frame size: %dx%d", p.Width, p.Height)
	}
	out, err := filepath.Abs(p.Out)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", p.Out, err)
	}
	p.Out = out
	return nil
}

// apply configures s. It reports false when the replayed keys quit.
func (p *RenderParams) apply(s *State) bool {
	s.Elevation = p.Elevation
	s.Azimuth = p.Azimuth
	if p.NoSpin {
		s.Spin = false
	}
	if p.Reverse {
		s.HandleSpecial(KeyLeft)
	}
	return s.HandleKeys(p.Keys) != Quit
}

func frameName(i int) string {
	return fmt.Sprintf("frame-%04d", i)
}

type SceneCmd struct {
	RenderParams

	Source   string `help:"Light source array CSV" default:"write_incremental_dda.csv"`
	Detector string `help:"Detector array CSV" default:"write_incremental_dda1.csv"`
	Circle   string `help:"Bresenham circle CSV" default:"write_bresenham.csv"`
	Quality  int    `short:"q" help:"Draw quality: 0 draft, 1 medium, 2 best" default:"0"`
}

func (c *SceneCmd) Validate(kctx *kong.Context) error {
	return c.RenderParams.validate()
}

func (c *SceneCmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	var ct CTScene
	var err error
	if ct.Source, err = geometry.Load(c.Source); err != nil {
		return err
	}
	if ct.Detector, err = geometry.Load(c.Detector); err != nil {
		return err
	}
	if ct.Circle, err = geometry.Load(c.Circle); err != nil {
		return err
	}
	if len(ct.Source) != len(ct.Detector) {
		slog.Warn("source and detector arrays differ in length, extra elements get no ray",
			"source", len(ct.Source), "detector", len(ct.Detector))
	}
	slog.Info("loaded arrays", "source", len(ct.Source), "detector", len(ct.Detector), "circle", len(ct.Circle))

	state := NewCTState()
	state.Quality = ParseQuality(c.Quality)
	if !c.apply(state) {
		slog.Info("quit before rendering")
		return nil
	}

	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Out, err)
	}

	var errCount atomic.Uint64
	for i := range c.Frames {
		frame := *state
		worker(func() {
			logger := slog.Default().With("frame", i, "azimuth", frame.Azimuth)
			canvas := NewCanvas(frame.Camera(c.Width, c.Height), black)
			ct.Draw(canvas, frame.Quality)
			dest, err := convert.Save(canvas.Image(), c.Format, c.Out, frameName(i))
			if err != nil {
				errCount.Add(1)
				logger.Error("could not save frame", "error", err)
				return
			}
			logger.Debug("rendered", "to", dest)
		})
		state.Tick()
	}
	wait(true)

	if n := errCount.Load(); n > 0 {
		return fmt.Errorf("error rendering %d frames", n)
	}
	slog.Info("rendered", "frames", c.Frames, "dir", c.Out)
	return nil
}

type PlaneCmd struct {
	RenderParams
	convert.BMPFlags

	Texture     string  `short:"t" help:"BMP texture file" default:"grape12.bmp"`
	Filter      string  `help:"Texture filter" enum:"nearest,linear" default:"linear"`
	PlaneWidth  float64 `help:"Half width of the plane" default:"100"`
	PlaneHeight float64 `help:"Half height of the plane" default:"100"`

	Options *bmp.Options `kong:"-"`
}

func (c *PlaneCmd) Validate(kctx *kong.Context) error {
	if err := c.RenderParams.validate(); err != nil {
		return err
	}
	if c.PlaneWidth <= 0 || c.PlaneHeight <= 0 {
		return fmt.Errorf("invalid plane size: %gx%g", c.PlaneWidth, c.PlaneHeight)
	}
	if _, err := ParseFilter(c.Filter); err != nil {
		return err
	}
	var err error
	c.Options, err = c.BMPFlags.Resolve()
	return err
}

func (c *PlaneCmd) Run(pool *parallel.Pool) error {
	logger := slog.Default().With("texture", c.Texture)
	tex, err := bmp.Load(c.Texture, c.Options)
	if err != nil {
		return fmt.Errorf("error loading texture: %w", err)
	}
	logger.Info("loaded texture", "width", tex.Width, "height", tex.Height)

	filter, _ := ParseFilter(c.Filter)
	plane := &PlaneScene{
		Texture: tex,
		Width:   c.PlaneWidth,
		Height:  c.PlaneHeight,
		Filter:  filter,
	}

	state := NewPlaneState()
	if !c.apply(state) {
		logger.Info("quit before rendering")
		return nil
	}

	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Out, err)
	}

	for i := range c.Frames {
		canvas := NewCanvas(state.Camera(c.Width, c.Height), black)
		plane.Draw(canvas, pool)
		if _, err := convert.Save(canvas.Image(), c.Format, c.Out, frameName(i)); err != nil {
			return fmt.Errorf("could not save frame %d: %w", i, err)
		}
		state.Tick()
	}
	pool.Wait(true)

	logger.Info("rendered", "frames", c.Frames, "dir", c.Out)
	return nil
}
