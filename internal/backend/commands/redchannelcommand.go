package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"

	"github.com/jo-hoe/pixelgrid/internal/backend/commandstructure"
)

// RedChannelCommand turns an image into an 8-bit intensity map holding the
// red component of every pixel. Fully transparent pixels read as 0.
type RedChannelCommand struct {
	name string
}

// NewRedChannelCommand creates a new red channel command. It takes no parameters.
func NewRedChannelCommand(params map[string]any) (commandstructure.Command, error) {
	return &RedChannelCommand{
		name: "RedChannelCommand",
	}, nil
}

// Name returns the command name
func (c *RedChannelCommand) Name() string {
	return c.name
}

// Execute decodes the PNG and encodes its red intensity as a grayscale PNG
func (c *RedChannelCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("RedChannelCommand: decoding image",
		"input_size_bytes", len(imageData))

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("RedChannelCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	intensity := ExtractRedChannel(img)

	slog.Debug("RedChannelCommand: channel extracted",
		"width", intensity.Bounds().Dx(),
		"height", intensity.Bounds().Dy())

	var buf bytes.Buffer
	if err := png.Encode(&buf, intensity); err != nil {
		slog.Error("RedChannelCommand: failed to encode intensity image", "error", err)
		return nil, fmt.Errorf("failed to encode intensity PNG image: %w", err)
	}

	slog.Debug("RedChannelCommand: extraction complete",
		"output_size_bytes", buf.Len())

	return buf.Bytes(), nil
}

// ExtractRedChannel returns a gray image whose value at each pixel is the
// non-premultiplied red component of img, or 0 where img is fully transparent.
// The result is anchored at the origin.
func ExtractRedChannel(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: redIntensity(img.At(x, y))})
		}
	}
	return out
}

// redIntensity reads the straight (non-premultiplied) red value of c, reduced
// to 8 bits. Straight 16-bit colours are read directly because going through
// the premultiplied RGBA() values loses precision at low alpha.
func redIntensity(c color.Color) uint8 {
	switch v := c.(type) {
	case color.NRGBA:
		if v.A == 0 {
			return 0
		}
		return v.R
	case color.NRGBA64:
		if v.A>>8 == 0 {
			return 0
		}
		return uint8(v.R >> 8)
	}

	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nrgba.A == 0 {
		return 0
	}
	return nrgba.R
}

func init() {
	if err := commandstructure.DefaultRegistry.Register("RedChannelCommand", NewRedChannelCommand); err != nil {
		panic(fmt.Sprintf("failed to register RedChannelCommand: %v", err))
	}
}
