package bmp

import (
	"fmt"
	"image"
	"image/color"
)

// Image is an RGB image as loaded from a BMP file.
type Image struct {
	Width  int
	Height int
	// Pix holds 3 bytes per pixel in R, G, B order. Rows are kept in file
	// order, so for a regular BMP the first row is the bottom of the
	// picture. That is the layout glTexImage2D expects.
	Pix []uint8
}

var _ image.Image = (*Image)(nil)

// NewImage allocates a black image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*bytesPerPixel),
	}
}

// Stride is the distance in bytes between stored rows.
func (p *Image) Stride() int { return p.Width * bytesPerPixel }

func (p *Image) ColorModel() color.Model { return color.RGBAModel }

func (p *Image) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

func (p *Image) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

func (p *Image) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Bounds())) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return color.RGBA{s[0], s[1], s[2], 0xff}
}

// PixOffset returns the index of the first element of Pix for the pixel at
// (x, y), with y = 0 at the top of the picture.
func (p *Image) PixOffset(x, y int) int {
	return (p.Height-1-y)*p.Stride() + x*bytesPerPixel
}

func (p *Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Bounds())) {
		return
	}
	c1 := color.RGBAModel.Convert(c).(color.RGBA)
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = c1.R, c1.G, c1.B
}

// SwapRB exchanges the first and last byte of every pixel, converting
// between the BGR order used on disk and RGB.
func (p *Image) SwapRB() {
	swapRB(p.Pix)
}

func swapRB(pix []uint8) {
	for i := 0; i+2 < len(pix); i += bytesPerPixel {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

// Channel names one of the three colour components.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "r"
	case Green:
		return "g"
	case Blue:
		return "b"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ParseChannel accepts r, g or b.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "r", "red":
		return Red, nil
	case "g", "green":
		return Green, nil
	case "b", "blue":
		return Blue, nil
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// MaskChannel zeroes channel c of every pixel.
func (p *Image) MaskChannel(c Channel) {
	if c < Red || c > Blue {
		return
	}
	for i := int(c); i < len(p.Pix); i += bytesPerPixel {
		p.Pix[i] = 0
	}
}

// Gray replaces every pixel with the mean of its channels.
func (p *Image) Gray() {
	for i := 0; i+2 < len(p.Pix); i += bytesPerPixel {
		s := p.Pix[i : i+3 : i+3]
		v := uint8((uint16(s[0]) + uint16(s[1]) + uint16(s[2])) / 3)
		s[0], s[1], s[2] = v, v, v
	}
}
