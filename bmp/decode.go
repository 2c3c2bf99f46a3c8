package bmp

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// DecodeHeader reads the header fields and leaves r positioned at the first
// byte of pixel data.
func DecodeHeader(r io.Reader, opts *Options) (Header, error) {
	order := opts.byteOrder()

	var h Header
	if err := skip(r, widthOffset); err != nil {
		return h, fmt.Errorf("%w: could not seek to width: %w", ErrDimension, err)
	}

	var err error
	if h.Width, err = readUint32(r, order); err != nil {
		return h, fmt.Errorf("%w: could not read width: %w", ErrDimension, err)
	} else if h.Width == 0 {
		return h, fmt.Errorf("%w: could not read width", ErrDimension)
	}

	if h.Height, err = readUint32(r, order); err != nil {
		return h, fmt.Errorf("%w: could not read height: %w", ErrDimension, err)
	} else if h.Height == 0 {
		return h, fmt.Errorf("%w: could not read height", ErrDimension)
	}

	if h.Planes, err = readUint16(r, order); err != nil {
		return h, fmt.Errorf("%w: could not read planes: %w", ErrPlanes, err)
	} else if h.Planes != 1 {
		return h, fmt.Errorf("%w: %d", ErrPlanes, h.Planes)
	}

	if h.BitsPerPixel, err = readUint16(r, order); err != nil {
		return h, fmt.Errorf("%w: could not read bpp: %w", ErrBitsPerPixel, err)
	} else if h.BitsPerPixel != 24 {
		return h, fmt.Errorf("%w: %d", ErrBitsPerPixel, h.BitsPerPixel)
	}

	if err = skip(r, trailerLen); err != nil {
		return h, fmt.Errorf("%w: could not skip header: %w", ErrTruncated, err)
	}

	return h, nil
}

// Decode reads a 24-bit BMP from r. The returned image holds RGB pixels,
// rows in file (bottom-up) order.
func Decode(r io.Reader, opts *Options) (*Image, error) {
	h, err := DecodeHeader(r, opts)
	if err != nil {
		return nil, err
	}

	pad := opts.padRows()
	row := uint64(h.Width) * bytesPerPixel
	if pad {
		row = (row + 3) &^ 3
	}
	if row > math.MaxInt/uint64(h.Height) {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, h.Width, h.Height)
	}
	diskSize := row * uint64(h.Height)

	data, err := readFull(r, int(diskSize))
	if err != nil {
		return nil, fmt.Errorf("%w: want %d bytes: %w", ErrTruncated, diskSize, err)
	}

	img := &Image{
		Width:  int(h.Width),
		Height: int(h.Height),
		Pix:    data,
	}
	if pad {
		img.Pix = unpadRows(data, img.Width, img.Height)
	}
	img.SwapRB()

	return img, nil
}

// Load decodes the BMP file at path.
func Load(path string, opts *Options) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return img, nil
}

// readFull reads exactly n bytes. Buffers over maxChunkSize are grown as
// data arrives so a bogus header cannot force a huge allocation up front.
func readFull(r io.Reader, n int) ([]byte, error) {
	if n <= maxChunkSize {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, unexpected(err)
		}
		return buf, nil
	}

	var buf []byte
	chunk := make([]byte, maxChunkSize)
	for remaining := n; remaining > 0; {
		next := min(remaining, maxChunkSize)
		if _, err := io.ReadFull(r, chunk[:next]); err != nil {
			return nil, unexpected(err)
		}
		buf = append(buf, chunk[:next]...)
		remaining -= next
	}
	return buf, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func unpadRows(data []byte, width, height int) []byte {
	src := rowLen(width, true)
	dst := rowLen(width, false)
	pix := make([]byte, dst*height)
	for y := range height {
		copy(pix[y*dst:(y+1)*dst], data[y*src:y*src+dst])
	}
	return pix
}
