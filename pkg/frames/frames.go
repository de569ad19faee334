// Package frames converts renderer output buffers into images and stores
// them.
package frames

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
)

// ErrEmptyFrame is returned for frames without pixels
var ErrEmptyFrame = errors.New("empty frame")

// ToImage converts a top-down packed RGB8 buffer into an RGBA image
func ToImage(data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrEmptyFrame, "size %dx%d", width, height)
	}
	if len(data) != width*height*3 {
		return nil, errors.Errorf("frame has %d bytes, want %d for %dx%d", len(data), width*height*3, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, o := 0, 0; i < len(data); i, o = i+3, o+4 {
		img.Pix[o] = data[i]
		img.Pix[o+1] = data[i+1]
		img.Pix[o+2] = data[i+2]
		img.Pix[o+3] = 255
	}
	return img, nil
}

// EncodePNG writes the buffer to w as a PNG
func EncodePNG(w io.Writer, data []byte, width, height int) error {
	img, err := ToImage(data, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "failed to encode PNG")
	}
	return nil
}

// PNG returns the buffer encoded as a PNG
func PNG(data []byte, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, data, width, height); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
