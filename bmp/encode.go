package bmp

import (
	"fmt"
	"io"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	// 72 dpi
	pixelsPerMeter = 2835
)

// Encode writes img as a 24-bit BMP with a BITMAPINFOHEADER. Header fields
// use the configured byte order, so the result round-trips through Decode
// with the same options.
func Encode(w io.Writer, img *Image, opts *Options) error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimension, img.Width, img.Height)
	}
	if want := img.Width * img.Height * bytesPerPixel; len(img.Pix) != want {
		return fmt.Errorf("pixel buffer holds %d bytes, want %d", len(img.Pix), want)
	}

	order := opts.byteOrder()
	pad := opts.padRows()
	row := rowLen(img.Width, pad)
	imageSize := row * img.Height

	hdr := make([]byte, 0, headerLen)
	hdr = append(hdr, 'B', 'M')
	hdr = order.AppendUint32(hdr, uint32(headerLen+imageSize))
	hdr = order.AppendUint32(hdr, 0)
	hdr = order.AppendUint32(hdr, fileHeaderLen+infoHeaderLen)
	hdr = order.AppendUint32(hdr, infoHeaderLen)
	hdr = order.AppendUint32(hdr, uint32(img.Width))
	hdr = order.AppendUint32(hdr, uint32(img.Height))
	hdr = order.AppendUint16(hdr, 1)
	hdr = order.AppendUint16(hdr, 24)
	hdr = order.AppendUint32(hdr, 0) // no compression
	hdr = order.AppendUint32(hdr, uint32(imageSize))
	hdr = order.AppendUint32(hdr, pixelsPerMeter)
	hdr = order.AppendUint32(hdr, pixelsPerMeter)
	hdr = order.AppendUint32(hdr, 0)
	hdr = order.AppendUint32(hdr, 0)

	if err := writeBytes(w, hdr); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	stride := img.Stride()
	buf := make([]byte, row)
	for y := range img.Height {
		copy(buf, img.Pix[y*stride:(y+1)*stride])
		swapRB(buf[:stride])
		if err := writeBytes(w, buf); err != nil {
			return fmt.Errorf("could not write row %d/%d: %w", y, img.Height, err)
		}
	}
	return nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
