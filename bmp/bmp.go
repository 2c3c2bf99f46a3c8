// Package bmp loads 24-bit, single plane BMP textures.
//
// The decoder is deliberately narrow: it assumes the classic 54 byte header
// layout, skips straight to the width field and never looks at the magic,
// the pixel offset or the compression field. Pixel data is read as one
// contiguous block of width*height*3 bytes unless Options.PadRows is set.
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// bytes skipped before the width field: file header and info header size
	widthOffset = 18
	// bytes skipped after the bits per pixel field
	trailerLen = 24
	headerLen  = widthOffset + 4 + 4 + 2 + 2 + trailerLen

	bytesPerPixel = 3

	// allocations above this size grow as data arrives
	maxChunkSize = 10 << 20
)

var (
	// ErrDimension is returned when the width or height field cannot be read
	// or reads as zero. The two cases are not told apart.
	ErrDimension = errors.New("bmp: invalid image dimension")
	// ErrPlanes is returned when the planes field is missing or is not 1.
	ErrPlanes = errors.New("bmp: unsupported number of planes")
	// ErrBitsPerPixel is returned when the bits per pixel field is missing or
	// is not 24.
	ErrBitsPerPixel = errors.New("bmp: unsupported bits per pixel")
	// ErrTruncated is returned when the stream ends before the pixel data.
	ErrTruncated = errors.New("bmp: truncated pixel data")
	// ErrTooLarge is returned when the pixel buffer cannot be addressed.
	ErrTooLarge = errors.New("bmp: image too large")
)

// ByteOrder is satisfied by binary.LittleEndian and binary.BigEndian.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Options control how header fields and pixel rows are laid out on disk.
// A nil *Options is the same as the zero value.
type Options struct {
	// ByteOrder assembles multi-byte header fields. Defaults to
	// binary.LittleEndian (most significant byte last).
	ByteOrder ByteOrder
	// PadRows reads and writes every row padded to a multiple of 4 bytes.
	PadRows bool
}

func (o *Options) byteOrder() ByteOrder {
	if o == nil || o.ByteOrder == nil {
		return binary.LittleEndian
	}
	return o.ByteOrder
}

func (o *Options) padRows() bool {
	return o != nil && o.PadRows
}

// ParseByteOrder maps "little" or "big" to the matching binary.ByteOrder.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "", "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order %q", s)
}

// Header holds the fields the decoder reads before the pixel data.
type Header struct {
	Width        uint32
	Height       uint32
	Planes       uint16
	BitsPerPixel uint16
}

// rowLen is the on-disk length of one row.
func rowLen(width int, pad bool) int {
	n := width * bytesPerPixel
	if pad {
		n = (n + 3) &^ 3
	}
	return n
}

// readUint32 reads a 4 byte field. Unlike the zero value the old loader
// returned, a short read is reported as io.ErrUnexpectedEOF.
func readUint32(r io.Reader, order binary.ByteOrder) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return order.Uint32(b[:]), nil
}

// readUint16 reads a 2 byte field, see readUint32.
func readUint16(r io.Reader, order binary.ByteOrder) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return order.Uint16(b[:]), nil
}

func skip(r io.Reader, n int64) error {
	if s, ok := r.(io.Seeker); ok {
		_, err := s.Seek(n, io.SeekCurrent)
		return err
	}
	_, err := io.CopyN(io.Discard, r, n)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
