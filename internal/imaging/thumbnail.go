// Package imaging decodes, resizes, and re-encodes images for thumbnail
// generation. Resizing fits the image inside a square bounding box while
// preserving aspect ratio; images already inside the box pass through
// untouched. Output is always JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Register decoders for the other formats the pipeline accepts.
	// JPEG is registered by the image/jpeg import above.
	_ "image/gif"
	_ "image/png"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// jpegQuality is the encoder quality for generated thumbnails.
const jpegQuality = 85

// Decode interprets raw bytes as an image, auto-detecting JPEG, PNG, or GIF.
// It returns the decoded image and the detected format name.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// FitDimensions returns the dimensions of an image scaled to fit inside
// bound×bound with aspect ratio preserved. Dimensions already inside the
// box are returned unchanged. Scaled dimensions never drop below 1.
func FitDimensions(width, height, bound int) (int, int) {
	if width <= bound && height <= bound {
		return width, height
	}

	if width > height {
		newHeight := int(float64(height) * float64(bound) / float64(width))
		if newHeight < 1 {
			newHeight = 1
		}
		return bound, newHeight
	}

	newWidth := int(float64(width) * float64(bound) / float64(height))
	if newWidth < 1 {
		newWidth = 1
	}
	return newWidth, bound
}

// Fit scales img down to fit inside bound×bound, preserving aspect ratio.
// Images already inside the box are returned as-is, never upscaled.
func Fit(img image.Image, bound int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := FitDimensions(width, height, bound)
	if newWidth == width && newHeight == height {
		return img
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	log.Debug().
		Int("origWidth", width).
		Int("origHeight", height).
		Int("newWidth", newWidth).
		Int("newHeight", newHeight).
		Msg("Image resized")

	return resized
}

// EncodeJPEG serializes img as JPEG. Alpha channels are flattened by the
// encoder; a source that genuinely cannot be expressed as JPEG fails here.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
