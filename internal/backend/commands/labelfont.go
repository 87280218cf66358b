package commands

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// labelDPI makes one point equal one pixel
const labelDPI = 72

// newLabelFace returns a face rendering at sizePx pixels. A non-empty fontPath
// names a TrueType or OpenType file; if it cannot be used the embedded Go
// Regular font is used instead.
func newLabelFace(fontPath string, sizePx float64) (font.Face, error) {
	if fontPath != "" {
		face, err := loadFontFile(fontPath, sizePx)
		if err == nil {
			slog.Debug("using configured label font", "font_path", fontPath, "size_px", sizePx)
			return face, nil
		}
		slog.Warn("failed to load label font, falling back to embedded font",
			"font_path", fontPath,
			"error", err)
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	return newFace(f, sizePx)
}

func loadFontFile(fontPath string, sizePx float64) (font.Face, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", fontPath, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font file %s: %w", fontPath, err)
	}
	return newFace(f, sizePx)
}

func newFace(f *opentype.Font, sizePx float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     labelDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// drawCenteredLabel draws label so that the middle of its advance box and the
// middle between ascender and descender both sit on (cx, cy)
func drawCenteredLabel(dst draw.Image, face font.Face, label string, cx, cy int, col color.Color) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	metrics := face.Metrics()
	width := drawer.MeasureString(label)

	drawer.Dot = fixed.Point26_6{
		X: fixed.I(cx) - width/2,
		Y: fixed.I(cy) + (metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(label)
}
