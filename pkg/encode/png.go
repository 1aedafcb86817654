// Package encode provides the default image-encoder collaborator: a
// row-major RGBA byte buffer written out as PNG, using image/png the same
// way the teacher's cmd/trace and cmd/render commands do.
package encode

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// PNGEncoder writes a resolved RGBA byte buffer to a PNG file. It
// implements render.Encoder without importing it, keeping the offline core
// free of any dependency on a concrete file format.
type PNGEncoder struct{}

// WriteImage encodes pix (row-major RGBA, width*height*4 bytes) as a PNG at
// path, matching spec.md §6's write_image(path, bytes, width, height,
// channels=4) contract.
func (PNGEncoder) WriteImage(path string, pix []byte, width, height int) error {
	img := &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("encode: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode: write png %s: %w", path, err)
	}
	return nil
}
