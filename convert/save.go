package convert

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the output encodings Save understands.
var Formats = []string{"png", "bmp", "tiff", "gif", "jpeg"}

// Save encodes img into destDir/baseName.<format>. The image is written to
// a temporary file first and renamed into place once fully flushed, so a
// failed encode never leaves a partial file behind.
func Save(img image.Image, format, destDir, baseName string) (dest string, err error) {
	destName := baseName + "." + format
	dest = filepath.Join(destDir, destName)

	outFile, err := os.CreateTemp(destDir, destName+".*")
	if err != nil {
		return dest, fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	tmpName := outFile.Name()
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				err = errors.Join(err, fmt.Errorf("could not remove temporary destination %q: %w", tmpName, rmErr))
			}
		}
	}()

	if err = encode(outFile, img, format); err != nil {
		outFile.Close()
		return dest, fmt.Errorf("could not encode %s destination %q: %w", format, destName, err)
	}
	if err = outFile.Sync(); err != nil {
		outFile.Close()
		return dest, fmt.Errorf("could not flush temporary destination %q: %w", destName, err)
	}
	if err = outFile.Close(); err != nil {
		return dest, fmt.Errorf("could not close temporary destination %q: %w", destName, err)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return dest, fmt.Errorf("could not rename destination file %q: %w", destName, err)
	}
	return dest, nil
}

func encode(f *os.File, img image.Image, format string) error {
	switch format {
	case "gif":
		return gif.Encode(f, img, nil)
	case "jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode(f, img)
	case "bmp":
		return bmp.Encode(f, img)
	case "tiff":
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
