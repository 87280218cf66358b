package commands

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

// encodeTestPNG encodes img as PNG and fails the test on error
func encodeTestPNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// decodeTestPNG decodes PNG bytes and fails the test on error
func decodeTestPNG(t testing.TB, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}
