package convert

import (
	"microct/bmp"
)

// BMPFlags configure how BMP textures are read. They are shared by every
// command that loads a texture.
type BMPFlags struct {
	ByteOrder string `help:"Byte order of BMP header fields (little, big)" enum:"little,big" default:"little" group:"bmp"`
	PadRows   bool   `help:"Rows are padded to 4 bytes, as standard BMP writers do" default:"false" group:"bmp"`
}

// Resolve turns the flags into decoder options.
func (f BMPFlags) Resolve() (*bmp.Options, error) {
	order, err := bmp.ParseByteOrder(f.ByteOrder)
	if err != nil {
		return nil, err
	}
	return &bmp.Options{ByteOrder: order, PadRows: f.PadRows}, nil
}
