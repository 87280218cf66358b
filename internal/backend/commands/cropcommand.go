package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/jo-hoe/pixelgrid/internal/backend/commandstructure"
)

// CropParams describes the region of interest to cut out of the source image
type CropParams struct {
	X      int
	Y      int
	Height int
	Width  int
}

// NewCropParamsFromMap creates CropParams from a generic map
func NewCropParamsFromMap(params map[string]any) (*CropParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"height", "width"}); err != nil {
		return nil, err
	}

	x := commandstructure.GetIntParam(params, "x", 0)
	y := commandstructure.GetIntParam(params, "y", 0)
	height := commandstructure.GetIntParam(params, "height", 0)
	width := commandstructure.GetIntParam(params, "width", 0)

	if height <= 0 {
		return nil, fmt.Errorf("height must be positive, got %d", height)
	}
	if width <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", width)
	}
	if x < 0 || y < 0 {
		return nil, fmt.Errorf("crop origin must not be negative, got (%d,%d)", x, y)
	}

	return &CropParams{
		X:      x,
		Y:      y,
		Height: height,
		Width:  width,
	}, nil
}

// CropCommand cuts a rectangular region out of the image
type CropCommand struct {
	name   string
	params *CropParams
}

// NewCropCommand creates a new crop command from configuration parameters
func NewCropCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewCropParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &CropCommand{
		name:   "CropCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *CropCommand) Name() string {
	return c.name
}

// Execute crops the image to the configured region, clipped to the image bounds
func (c *CropCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("CropCommand: decoding image",
		"input_size_bytes", len(imageData))

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("CropCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	bounds := img.Bounds()
	requested := image.Rect(c.params.X, c.params.Y, c.params.X+c.params.Width, c.params.Y+c.params.Height).
		Add(bounds.Min)
	region := requested.Intersect(bounds)

	slog.Debug("CropCommand: image decoded",
		"original_width", bounds.Dx(),
		"original_height", bounds.Dy(),
		"requested_region", requested.String(),
		"clipped_region", region.String())

	if region.Empty() {
		slog.Error("CropCommand: crop region outside of image",
			"requested_region", requested.String(),
			"image_bounds", bounds.String())
		return nil, fmt.Errorf("crop region %v does not overlap image bounds %v", requested, bounds)
	}

	if region == bounds {
		slog.Debug("CropCommand: region covers whole image, no crop needed")
		return imageData, nil
	}

	// SubImage shares the pixel buffer, so values are carried over unchanged
	subImager, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("image type %T does not support cropping", img)
	}
	croppedImg := subImager.SubImage(region)

	slog.Debug("CropCommand: encoding cropped image")

	var buf bytes.Buffer
	if err := png.Encode(&buf, croppedImg); err != nil {
		slog.Error("CropCommand: failed to encode cropped image", "error", err)
		return nil, fmt.Errorf("failed to encode cropped PNG image: %w", err)
	}

	slog.Debug("CropCommand: crop complete",
		"output_size_bytes", buf.Len())

	return buf.Bytes(), nil
}

// GetParams returns the typed parameters
func (c *CropCommand) GetParams() *CropParams {
	return c.params
}

func init() {
	if err := commandstructure.DefaultRegistry.Register("CropCommand", NewCropCommand); err != nil {
		panic(fmt.Sprintf("failed to register CropCommand: %v", err))
	}
}
