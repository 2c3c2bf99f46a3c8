package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// rawBMP builds a file the way the loader expects it: 54 header bytes
// followed by an unpadded pixel block.
func rawBMP(order ByteOrder, width, height uint32, planes, bpp uint16, pix []byte) []byte {
	b := make([]byte, widthOffset)
	b[0], b[1] = 'B', 'M'
	b = order.AppendUint32(b, width)
	b = order.AppendUint32(b, height)
	b = order.AppendUint16(b, planes)
	b = order.AppendUint16(b, bpp)
	b = append(b, make([]byte, trailerLen)...)
	return append(b, pix...)
}

func TestDecode2x2(t *testing.T) {
	disk := []byte{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
		10, 11, 12,
	}
	img, err := Decode(bytes.NewReader(rawBMP(binary.LittleEndian, 2, 2, 1, 24, disk)), nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("unexpected dimensions: %dx%d", img.Width, img.Height)
	}
	want := []byte{
		3, 2, 1,
		6, 5, 4,
		9, 8, 7,
		12, 11, 10,
	}
	if !bytes.Equal(img.Pix, want) {
		t.Fatalf("got pixels %v, want %v", img.Pix, want)
	}
}

func TestDecodeBufferLength(t *testing.T) {
	sizes := []struct{ w, h uint32 }{{1, 1}, {3, 5}, {17, 2}, {64, 64}}
	for _, sz := range sizes {
		pix := make([]byte, sz.w*sz.h*3)
		img, err := Decode(bytes.NewReader(rawBMP(binary.LittleEndian, sz.w, sz.h, 1, 24, pix)), nil)
		if err != nil {
			t.Fatalf("%dx%d: %v", sz.w, sz.h, err)
		}
		if len(img.Pix) != int(sz.w*sz.h*3) {
			t.Errorf("%dx%d: buffer holds %d bytes", sz.w, sz.h, len(img.Pix))
		}
	}
}

func TestDecodeBigEndian(t *testing.T) {
	pix := make([]byte, 3*2*3)
	data := rawBMP(binary.BigEndian, 3, 2, 1, 24, pix)

	img, err := Decode(bytes.NewReader(data), &Options{ByteOrder: binary.BigEndian})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("unexpected dimensions: %dx%d", img.Width, img.Height)
	}

	// the same bytes read little-endian give a huge width and no pixels
	if _, err = Decode(bytes.NewReader(data), nil); err == nil {
		t.Fatal("expected little-endian decode of big-endian header to fail")
	}
}

func TestDecodeErrors(t *testing.T) {
	pix := make([]byte, 2*2*3)
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"zero width", rawBMP(binary.LittleEndian, 0, 2, 1, 24, pix), ErrDimension},
		{"zero height", rawBMP(binary.LittleEndian, 2, 0, 1, 24, pix), ErrDimension},
		{"short width", rawBMP(binary.LittleEndian, 2, 2, 1, 24, nil)[:widthOffset+2], ErrDimension},
		{"empty", nil, ErrDimension},
		{"two planes", rawBMP(binary.LittleEndian, 2, 2, 2, 24, pix), ErrPlanes},
		{"zero planes", rawBMP(binary.LittleEndian, 2, 2, 0, 24, pix), ErrPlanes},
		{"8 bpp", rawBMP(binary.LittleEndian, 2, 2, 1, 8, pix), ErrBitsPerPixel},
		{"32 bpp", rawBMP(binary.LittleEndian, 2, 2, 1, 32, pix), ErrBitsPerPixel},
		{"truncated pixels", rawBMP(binary.LittleEndian, 2, 2, 1, 24, pix[:len(pix)-1]), ErrTruncated},
		{"no pixels", rawBMP(binary.LittleEndian, 2, 2, 1, 24, nil), ErrTruncated},
		{"too large", rawBMP(binary.LittleEndian, 0xffffffff, 0xffffffff, 1, 24, nil), ErrTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img, err := Decode(bytes.NewReader(tc.data), nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got error %v, want %v", err, tc.want)
			}
			if img != nil {
				t.Fatal("expected no image on failure")
			}
		})
	}
}

// A zero width and a stream ending inside the width field cannot be told
// apart by the sentinel, only by the wrapped cause.
func TestDecodeZeroWidthIsReadError(t *testing.T) {
	_, zeroErr := Decode(bytes.NewReader(rawBMP(binary.LittleEndian, 0, 1, 1, 24, nil)), nil)
	_, shortErr := Decode(bytes.NewReader(make([]byte, widthOffset+1)), nil)

	if !errors.Is(zeroErr, ErrDimension) || !errors.Is(shortErr, ErrDimension) {
		t.Fatalf("got %v and %v, want both to be ErrDimension", zeroErr, shortErr)
	}
	if !errors.Is(shortErr, io.ErrUnexpectedEOF) {
		t.Errorf("short read should wrap io.ErrUnexpectedEOF: %v", shortErr)
	}
}

func TestDecodeTruncatedWrapsEOF(t *testing.T) {
	_, err := Decode(bytes.NewReader(rawBMP(binary.LittleEndian, 4, 4, 1, 24, make([]byte, 10))), nil)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestDecodeHeader(t *testing.T) {
	r := bytes.NewReader(rawBMP(binary.LittleEndian, 7, 9, 1, 24, []byte{0xaa}))
	h, err := DecodeHeader(r, nil)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	want := Header{Width: 7, Height: 9, Planes: 1, BitsPerPixel: 24}
	if h != want {
		t.Fatalf("got %+v, want %+v", h, want)
	}
	if b, err := r.ReadByte(); err != nil || b != 0xaa {
		t.Fatalf("reader not positioned at pixel data: %x %v", b, err)
	}
}

func TestDecodeNonSeeker(t *testing.T) {
	disk := []byte{1, 2, 3}
	data := rawBMP(binary.LittleEndian, 1, 1, 1, 24, disk)
	img, err := Decode(io.MultiReader(bytes.NewReader(data[:10]), bytes.NewReader(data[10:])), nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(img.Pix, []byte{3, 2, 1}) {
		t.Fatalf("got %v", img.Pix)
	}
}

func TestDecodePadded(t *testing.T) {
	// 1 pixel wide rows are padded from 3 to 4 bytes
	disk := []byte{
		1, 2, 3, 0,
		4, 5, 6, 0,
	}
	img, err := Decode(bytes.NewReader(rawBMP(binary.LittleEndian, 1, 2, 1, 24, disk)), &Options{PadRows: true})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := []byte{3, 2, 1, 6, 5, 4}; !bytes.Equal(img.Pix, want) {
		t.Fatalf("got %v, want %v", img.Pix, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "grape12.bmp")
	if err := os.WriteFile(name, rawBMP(binary.LittleEndian, 1, 1, 1, 24, []byte{9, 8, 7}), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(name, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(img.Pix, []byte{7, 8, 9}) {
		t.Fatalf("got %v", img.Pix)
	}

	if _, err = Load(filepath.Join(dir, "missing.bmp"), nil); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("got %v, want fs.ErrNotExist", err)
	}
}

func TestParseByteOrder(t *testing.T) {
	for s, want := range map[string]binary.ByteOrder{
		"":       binary.LittleEndian,
		"little": binary.LittleEndian,
		"big":    binary.BigEndian,
	} {
		got, err := ParseByteOrder(s)
		if err != nil || got != want {
			t.Errorf("ParseByteOrder(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseByteOrder("middle"); err == nil {
		t.Error("expected error for unknown byte order")
	}
}
