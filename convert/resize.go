package convert

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/image/draw"
)

// Resize scales a texture to fit Width x Height. A zero dimension keeps
// the source size on that axis.
type Resize struct {
	Width  int
	Height int
	// Crop trims the source to the destination aspect ratio.
	Crop bool
	// Fill, when set and not cropping, pads the scaled texture to the full
	// destination size instead of shrinking the destination.
	Fill color.Color
}

func (r Resize) Apply(logger *slog.Logger, img image.Image) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	destWidth := float64(r.Width)
	if destWidth == 0 {
		destWidth = srcWidth
	}
	destHeight := float64(r.Height)
	if destHeight == 0 {
		destHeight = srcHeight
	}

	if (srcWidth == destWidth) && (srcHeight == destHeight) {
		return img
	}

	destSize := image.Rect(0, 0, int(destWidth), int(destHeight))
	destBounds := destSize

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight
	var fill bool
	switch {
	case r.Crop && srcAR < destAR:
		dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
		srcBounds.Min.Y += dh
		srcBounds.Max.Y -= dh
	case r.Crop && srcAR > destAR:
		dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
		srcBounds.Min.X += dw
		srcBounds.Max.X -= dw
	case r.Crop:
	case srcAR < destAR:
		dw := destHeight * srcAR
		if r.Fill == nil {
			destSize.Max.X = int(math.Round(dw))
			destBounds.Max.X = destSize.Max.X
		} else if fill = destWidth > dw; fill {
			idw := int(math.Round((destWidth - dw) / 2))
			destBounds.Min.X += idw
			destBounds.Max.X -= idw
		}
	case srcAR > destAR:
		dh := destWidth / srcAR
		if r.Fill == nil {
			destSize.Max.Y = int(math.Round(dh))
			destBounds.Max.Y = destSize.Max.Y
		} else if fill = destHeight > dh; fill {
			idh := int(math.Round((destHeight - dh) / 2))
			destBounds.Min.Y += idh
			destBounds.Max.Y -= idh
		}
	}

	logger.Info("resizing", "width", destBounds.Dx(), "height", destBounds.Dy())
	dest := image.NewRGBA(destSize)
	if fill {
		draw.Draw(dest, destSize, image.NewUniform(r.Fill), destSize.Min, draw.Src)
	}
	draw.CatmullRom.Scale(dest, destBounds, img, srcBounds, draw.Over, nil)

	return dest
}

// ParseHexColor reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (color.Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return nil, fmt.Errorf("invalid fill color %q, should start with #", s)
	}
	digits := s[1:]

	var short bool
	switch len(digits) {
	case 3, 4:
		short = true
	case 6, 8:
	default:
		return nil, fmt.Errorf("invalid fill color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	step := 2
	if short {
		step = 1
	}
	ch := []uint8{0, 0, 0, 0xff}
	for i := 0; i*step < len(digits); i++ {
		n, err := strconv.ParseUint(digits[i*step:(i+1)*step], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("could not read color %q: %w", s, err)
		}
		v := uint8(n)
		if short {
			v |= v << 4
		}
		ch[i] = v
	}

	// premultiplied, as color.RGBA expects
	a := uint16(ch[3])
	return color.RGBA{
		R: uint8(uint16(ch[0]) * a / 0xff),
		G: uint8(uint16(ch[1]) * a / 0xff),
		B: uint8(uint16(ch[2]) * a / 0xff),
		A: ch[3],
	}, nil
}
