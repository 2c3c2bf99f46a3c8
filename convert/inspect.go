package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"microct/bmp"

	"github.com/alecthomas/kong"
	xbmp "golang.org/x/image/bmp"
)

// Report describes one inspected texture.
type Report struct {
	Header bmp.Header
	Bytes  int
	// Standard is false when golang.org/x/image/bmp rejects the file.
	Standard bool
	// Mismatch explains a disagreement between the two decoders.
	Mismatch string
}

type InspectCmd struct {
	BMPFlags

	Files []string `arg:"" help:"BMP files to inspect"`

	Options *bmp.Options `kong:"-"`
}

func (c *InspectCmd) Validate(kctx *kong.Context) error {
	var err error
	c.Options, err = c.BMPFlags.Resolve()
	return err
}

func (c *InspectCmd) Run() error {
	var errCount int
	for _, name := range c.Files {
		logger := slog.Default().With("file", name)
		rep, err := Inspect(name, c.Options)
		if err != nil {
			errCount++
			logger.Error("could not inspect texture", "error", err)
			continue
		}

		logger.Info("texture",
			"width", rep.Header.Width,
			"height", rep.Header.Height,
			"planes", rep.Header.Planes,
			"bpp", rep.Header.BitsPerPixel,
			"bytes", rep.Bytes,
			"standard", rep.Standard)
		if rep.Mismatch != "" {
			logger.Warn("decoders disagree", "reason", rep.Mismatch)
		}
	}

	if errCount > 0 {
		return fmt.Errorf("error inspecting %d files", errCount)
	}
	return nil
}

// Inspect decodes the file at name and cross-checks its header with
// golang.org/x/image/bmp.
func Inspect(name string, opts *bmp.Options) (Report, error) {
	var rep Report

	f, err := os.Open(name)
	if err != nil {
		return rep, fmt.Errorf("could not open %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close texture", "name", name, "error", closeErr)
		}
	}()

	if rep.Header, err = bmp.DecodeHeader(f, opts); err != nil {
		return rep, fmt.Errorf("could not decode header: %w", err)
	}

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return rep, fmt.Errorf("could not rewind: %w", err)
	}
	img, err := bmp.Decode(f, opts)
	if err != nil {
		return rep, fmt.Errorf("could not decode pixels: %w", err)
	}
	rep.Bytes = len(img.Pix)

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return rep, fmt.Errorf("could not rewind: %w", err)
	}
	conf, err := xbmp.DecodeConfig(f)
	if err != nil {
		rep.Mismatch = err.Error()
		return rep, nil
	}
	rep.Standard = true
	if conf.Width != int(rep.Header.Width) || conf.Height != int(rep.Header.Height) {
		rep.Mismatch = fmt.Sprintf("x/image/bmp reads %dx%d", conf.Width, conf.Height)
	}
	return rep, nil
}
