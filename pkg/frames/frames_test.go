package frames

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/pkg/errors"
)

// testFrame returns a 2x2 frame: red, green / blue, white (top-down)
func testFrame() []byte {
	return []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}
}

func TestToImage(t *testing.T) {
	img, err := ToImage(testFrame(), 2, 2)
	if err != nil {
		t.Fatalf("ToImage() error: %v", err)
	}

	expected := map[[2]int]color.RGBA{
		{0, 0}: {255, 0, 0, 255},
		{1, 0}: {0, 255, 0, 255},
		{0, 1}: {0, 0, 255, 255},
		{1, 1}: {255, 255, 255, 255},
	}
	for pos, want := range expected {
		if got := img.RGBAAt(pos[0], pos[1]); got != want {
			t.Errorf("Pixel %v = %v, want %v", pos, got, want)
		}
	}
}

func TestToImage_Errors(t *testing.T) {
	testCases := []struct {
		name          string
		data          []byte
		width, height int
		empty         bool
	}{
		{"zero width", nil, 0, 2, true},
		{"negative height", nil, 2, -1, true},
		{"short buffer", []byte{1, 2, 3}, 2, 2, false},
		{"long buffer", make([]byte, 13), 2, 2, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToImage(tc.data, tc.width, tc.height)
			if err == nil {
				t.Fatal("Expected error")
			}
			if isEmpty := errors.Cause(err) == ErrEmptyFrame; isEmpty != tc.empty {
				t.Errorf("ErrEmptyFrame = %v, want %v (err: %v)", isEmpty, tc.empty, err)
			}
		})
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, testFrame(), 2, 2); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("Expected 2x2 image, got %v", b)
	}
	r, g, b, a := decoded.At(0, 1).RGBA()
	if r != 0 || g != 0 || b != 0xffff || a != 0xffff {
		t.Errorf("Bottom-left pixel should be blue, got %d %d %d %d", r, g, b, a)
	}
}
