package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strconv"

	"github.com/jo-hoe/pixelgrid/internal/backend/commandstructure"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

const (
	DefaultScale     = 40
	DefaultFontScale = 0.5
	MaxScale         = 512

	// labels on cells at or above this intensity are drawn in black
	labelContrastThreshold = 128
)

// PixelGridParams represents typed parameters for the pixel grid command
type PixelGridParams struct {
	Scale     int
	FontScale float64
	FontPath  string
}

// NewPixelGridParamsFromMap creates PixelGridParams from a generic map
func NewPixelGridParamsFromMap(params map[string]any) (*PixelGridParams, error) {
	scale := commandstructure.GetIntParam(params, "scale", DefaultScale)
	fontScale := commandstructure.GetFloatParam(params, "fontScale", DefaultFontScale)
	fontPath := commandstructure.GetStringParam(params, "fontPath", "")

	if scale <= 0 || scale > MaxScale {
		return nil, fmt.Errorf("scale must be between 1 and %d, got %d", MaxScale, scale)
	}
	if fontScale <= 0 || fontScale > 1 {
		return nil, fmt.Errorf("fontScale must be in (0, 1], got %f", fontScale)
	}

	return &PixelGridParams{
		Scale:     scale,
		FontScale: fontScale,
		FontPath:  fontPath,
	}, nil
}

// PixelGridCommand renders every pixel of an intensity image as a magnified,
// labelled cell
type PixelGridCommand struct {
	name   string
	params *PixelGridParams
}

// NewPixelGridCommand creates a new pixel grid command from configuration parameters
func NewPixelGridCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewPixelGridParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &PixelGridCommand{
		name:   "PixelGridCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *PixelGridCommand) Name() string {
	return c.name
}

// Execute decodes the intensity PNG and returns the rendered grid as PNG
func (c *PixelGridCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("PixelGridCommand: decoding image",
		"input_size_bytes", len(imageData))

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("PixelGridCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	fontSize := float64(c.params.Scale) * c.params.FontScale
	if fontSize < 1 {
		fontSize = 1
	}
	face, err := newLabelFace(c.params.FontPath, fontSize)
	if err != nil {
		slog.Error("PixelGridCommand: failed to prepare label font", "error", err)
		return nil, err
	}
	defer face.Close()

	intensity := toGray(img)
	bounds := intensity.Bounds()

	slog.Debug("PixelGridCommand: rendering grid",
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"scale", c.params.Scale,
		"font_size_px", fontSize)

	grid := RenderPixelGrid(intensity, c.params.Scale, face)

	var buf bytes.Buffer
	if err := png.Encode(&buf, grid); err != nil {
		slog.Error("PixelGridCommand: failed to encode grid image", "error", err)
		return nil, fmt.Errorf("failed to encode grid PNG image: %w", err)
	}

	slog.Debug("PixelGridCommand: rendering complete",
		"output_width", grid.Bounds().Dx(),
		"output_height", grid.Bounds().Dy(),
		"output_size_bytes", buf.Len())

	return buf.Bytes(), nil
}

// GetParams returns the typed parameters
func (c *PixelGridCommand) GetParams() *PixelGridParams {
	return c.params
}

// RenderPixelGrid draws one scale x scale cell per pixel of intensity, in
// row-major order. Each cell is filled with its gray value and carries the
// value as a centred decimal label.
func RenderPixelGrid(intensity *image.Gray, scale int, face font.Face) *image.RGBA {
	bounds := intensity.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	grid := createTargetCanvas(width*scale, height*scale, color.Black)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			value := intensity.GrayAt(bounds.Min.X+col, bounds.Min.Y+row).Y

			cell := image.Rect(col*scale, row*scale, (col+1)*scale, (row+1)*scale)
			draw.Draw(grid, cell, image.NewUniform(CellColor(value)), image.Point{}, draw.Src)

			drawCenteredLabel(grid, face, CellLabel(value),
				cell.Min.X+scale/2, cell.Min.Y+scale/2, LabelColor(value))
		}
	}
	return grid
}

// CellColor is the fill colour of a cell with the given intensity
func CellColor(value uint8) color.RGBA {
	return color.RGBA{R: value, G: value, B: value, A: 0xff}
}

// CellLabel is the text printed on a cell
func CellLabel(value uint8) string {
	return strconv.Itoa(int(value))
}

// LabelColor picks white text on dark cells and black text on light ones
func LabelColor(value uint8) color.Color {
	if value < labelContrastThreshold {
		return color.White
	}
	return color.Black
}

// toGray returns img as a gray image. Intensity maps produced by
// RedChannelCommand are used as is; anything else goes through the luma model.
func toGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

func init() {
	if err := commandstructure.DefaultRegistry.Register("PixelGridCommand", NewPixelGridCommand); err != nil {
		panic(fmt.Sprintf("failed to register PixelGridCommand: %v", err))
	}
}
