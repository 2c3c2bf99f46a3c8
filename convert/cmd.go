// Package convert batch converts BMP textures and inspects their headers.
package convert

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"microct/bmp"
	"microct/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	BMPFlags

	Scan   string `help:"Source folder to scan for BMP textures" default:"."`
	Dest   string `help:"Destination folder for converted textures. Relative to scan dir if not absolute." default:"converted"`
	Ext    string `help:"Extension of the files to convert" default:".bmp"`
	Format string `help:"Output format" enum:"png,bmp,tiff,gif,jpeg" default:"png"`

	Mask string `help:"Zero one colour channel (r, g, b)" group:"pixels"`
	Gray bool   `help:"Convert to gray scale" default:"false" group:"pixels"`

	Resize bool   `help:"Resize texture" default:"false" group:"resize"`
	Width  int    `help:"Max width" group:"resize"`
	Height int    `help:"Max height" group:"resize"`
	Crop   bool   `help:"Crop texture to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill   string `help:"If given and not cropping, will fill background with this color to maintain destination aspect ratio" group:"resize"`

	FillColor color.Color  `kong:"-"`
	Channel   *bmp.Channel `kong:"-"`
	Options   *bmp.Options `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Resize {
		switch {
		case (c.Width < 0):
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case (c.Height < 0):
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case (c.Width == 0) && (c.Height == 0):
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if (!c.Crop) && (c.Fill != "") {
		if c.FillColor, err = ParseHexColor(c.Fill); err != nil {
			return err
		}
	}

	if c.Mask != "" {
		ch, err := bmp.ParseChannel(c.Mask)
		if err != nil {
			return fmt.Errorf("invalid mask: %w", err)
		}
		c.Channel = &ch
	}

	if c.Options, err = c.BMPFlags.Resolve(); err != nil {
		return err
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), c.Ext) {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				logger := slog.Default().With("file", filepath.Join(c.Scan, fileName))
				if err := c.convert(logger, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not convert texture", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) convert(logger *slog.Logger, fileName string) error {
	tex, err := bmp.Load(filepath.Join(c.Scan, fileName), c.Options)
	if err != nil {
		return err
	}
	logger.Debug("loaded texture", "width", tex.Width, "height", tex.Height)

	if c.Channel != nil {
		tex.MaskChannel(*c.Channel)
	}
	if c.Gray {
		tex.Gray()
	}

	var img image.Image = tex
	if c.Resize {
		img = Resize{
			Width:  c.Width,
			Height: c.Height,
			Crop:   c.Crop,
			Fill:   c.FillColor,
		}.Apply(logger, img)
	}

	baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	dest, err := Save(img, c.Format, c.Dest, baseName)
	if err != nil {
		return fmt.Errorf("could not save texture to %q: %w", c.Dest, err)
	}
	logger.Info("converted", "to", dest)
	return nil
}
