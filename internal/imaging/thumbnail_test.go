package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

// newTestImage builds an RGBA image with a simple gradient so encoders
// have real pixel data to work on.
func newTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		bound      int
		wantWidth  int
		wantHeight int
	}{
		{"landscape over bound", 1000, 500, 500, 500, 250},
		{"portrait over bound", 500, 1000, 500, 250, 500},
		{"square over bound", 1200, 1200, 500, 500, 500},
		{"within bound", 400, 300, 500, 400, 300},
		{"exactly at bound", 500, 500, 500, 500, 500},
		{"one dimension at bound", 500, 200, 500, 500, 200},
		{"landscape photo", 800, 600, 500, 500, 375},
		{"extreme aspect floors to one", 5000, 2, 500, 500, 1},
		{"tall extreme aspect floors to one", 2, 5000, 500, 1, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotWidth, gotHeight := FitDimensions(tt.width, tt.height, tt.bound)
			if gotWidth != tt.wantWidth || gotHeight != tt.wantHeight {
				t.Errorf("FitDimensions(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.width, tt.height, tt.bound, gotWidth, gotHeight, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestFit_NoUpscale(t *testing.T) {
	img := newTestImage(200, 100)

	got := Fit(img, 500)

	rgba, ok := got.(*image.RGBA)
	if !ok || rgba != img {
		t.Fatal("expected the original image back when already inside the bound")
	}
	if got.Bounds().Dx() != 200 || got.Bounds().Dy() != 100 {
		t.Errorf("dimensions changed to %dx%d, want 200x100", got.Bounds().Dx(), got.Bounds().Dy())
	}
}

func TestFit_ShrinksLandscape(t *testing.T) {
	img := newTestImage(1000, 500)

	got := Fit(img, 500)

	if got.Bounds().Dx() != 500 || got.Bounds().Dy() != 250 {
		t.Errorf("Fit(1000x500, 500) = %dx%d, want 500x250", got.Bounds().Dx(), got.Bounds().Dy())
	}
}

func TestFit_PreservesAspectRatio(t *testing.T) {
	img := newTestImage(800, 600)

	got := Fit(img, 500)

	if got.Bounds().Dx() != 500 || got.Bounds().Dy() != 375 {
		t.Errorf("Fit(800x600, 500) = %dx%d, want 500x375", got.Bounds().Dx(), got.Bounds().Dy())
	}
}

func TestEncodeJPEG_RoundTrip(t *testing.T) {
	img := newTestImage(300, 200)

	data, err := EncodeJPEG(img)
	if err != nil {
		t.Fatalf("EncodeJPEG() returned error: %v", err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("output does not start with the JPEG magic bytes")
	}

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not decodable JPEG: %v", err)
	}
	if decoded.Bounds().Dx() != 300 || decoded.Bounds().Dy() != 200 {
		t.Errorf("round-trip dimensions %dx%d, want 300x200", decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

func TestEncodeJPEG_FlattensAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 120})
		}
	}

	if _, err := EncodeJPEG(img); err != nil {
		t.Errorf("EncodeJPEG() failed on an alpha-channel source: %v", err)
	}
}

func TestDecode_Formats(t *testing.T) {
	img := newTestImage(40, 30)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, img, nil); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	var gifBuf bytes.Buffer
	if err := gif.Encode(&gifBuf, img, nil); err != nil {
		t.Fatalf("encode test gif: %v", err)
	}

	tests := []struct {
		name       string
		data       []byte
		wantFormat string
	}{
		{"png", pngBuf.Bytes(), "png"},
		{"jpeg", jpegBuf.Bytes(), "jpeg"},
		{"gif", gifBuf.Bytes(), "gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, format, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode() returned error: %v", err)
			}
			if format != tt.wantFormat {
				t.Errorf("format = %q, want %q", format, tt.wantFormat)
			}
			if decoded.Bounds().Dx() != 40 || decoded.Bounds().Dy() != 30 {
				t.Errorf("dimensions %dx%d, want 40x30", decoded.Bounds().Dx(), decoded.Bounds().Dy())
			}
		})
	}
}

func TestDecode_InvalidBytes(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("Decode() succeeded on garbage bytes, want error")
	}
}

func TestProbeMeta_NoMetadata(t *testing.T) {
	img := newTestImage(20, 20)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}

	if _, ok := ProbeMeta(buf.Bytes()); ok {
		t.Error("ProbeMeta() reported metadata for a bare generated PNG")
	}
}

func TestProbeMeta_GarbageBytes(t *testing.T) {
	if _, ok := ProbeMeta([]byte("not an image at all")); ok {
		t.Error("ProbeMeta() reported metadata for garbage bytes")
	}
}
