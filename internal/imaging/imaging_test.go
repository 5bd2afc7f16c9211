package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding processed image: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestProcessPNG(t *testing.T) {
	result, err := Process(bytes.NewReader(encodePNG(t, 640, 480)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg output, got %s", result.MIME)
	}

	// Within bounds: dimensions preserved, still re-encoded as JPEG.
	w, h := decodeSize(t, result.Data)
	if w != 640 || h != 480 {
		t.Errorf("expected 640x480, got %dx%d", w, h)
	}

	tw, th := decodeSize(t, result.Thumb)
	if tw > ThumbDimension || th > ThumbDimension {
		t.Errorf("thumbnail exceeds %d: %dx%d", ThumbDimension, tw, th)
	}
	if tw != 256 || th != 192 {
		t.Errorf("expected 256x192 thumbnail, got %dx%d", tw, th)
	}
}

func TestProcessDownscalesLargeImages(t *testing.T) {
	result, err := Process(bytes.NewReader(encodePNG(t, 2000, 1000)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	w, h := decodeSize(t, result.Data)
	if w != MaxDimension || h != 640 {
		t.Errorf("expected %dx640, got %dx%d", MaxDimension, w, h)
	}
}

func TestProcessTallImage(t *testing.T) {
	result, err := Process(bytes.NewReader(encodePNG(t, 100, 2000)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	w, h := decodeSize(t, result.Data)
	if h != MaxDimension || w != 64 {
		t.Errorf("expected 64x%d, got %dx%d", MaxDimension, w, h)
	}
}

func TestProcessJPEGInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}

	result, err := Process(&buf)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if w, h := decodeSize(t, result.Data); w != 32 || h != 32 {
		t.Errorf("expected 32x32, got %dx%d", w, h)
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := Process(strings.NewReader("definitely not an image"))
	if err == nil {
		t.Fatal("expected an error for non-image data")
	}
	if !strings.Contains(err.Error(), "unsupported image format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProcessRejectsGIF(t *testing.T) {
	// A minimal GIF header: sniffed as image/gif, which is not accepted.
	_, err := Process(strings.NewReader("GIF89a\x01\x00\x01\x00"))
	if err == nil {
		t.Fatal("expected an error for GIF input")
	}
}
