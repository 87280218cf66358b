package commands

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"strings"

	"github.com/jo-hoe/pixelgrid/internal/backend/commandstructure"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const jpegQuality = 90

// EncodeParams represents typed parameters for the encode command
type EncodeParams struct {
	Format string
}

// NormalizeFormat maps a file extension or format name to the canonical
// encoder name. ok is false for formats that cannot be written.
func NormalizeFormat(format string) (normalized string, ok bool) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		return "png", true
	case "jpg", "jpeg":
		return "jpeg", true
	case "gif":
		return "gif", true
	case "bmp":
		return "bmp", true
	case "tif", "tiff":
		return "tiff", true
	}
	return "", false
}

// NewEncodeParamsFromMap creates EncodeParams from a generic map
func NewEncodeParamsFromMap(params map[string]any) (*EncodeParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"format"}); err != nil {
		return nil, err
	}

	raw := commandstructure.GetStringParam(params, "format", "")
	format, ok := NormalizeFormat(raw)
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %q", raw)
	}

	return &EncodeParams{Format: format}, nil
}

// EncodeCommand writes the image in the requested output format
type EncodeCommand struct {
	name   string
	params *EncodeParams
}

// NewEncodeCommand creates a new encode command from configuration parameters
func NewEncodeCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewEncodeParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &EncodeCommand{
		name:   "EncodeCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *EncodeCommand) Name() string {
	return c.name
}

// Execute decodes the PNG input and encodes it to the target format
func (c *EncodeCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("EncodeCommand: decoding image",
		"input_size_bytes", len(imageData),
		"target_format", c.params.Format)

	if c.params.Format == "png" && hasCorrectPngSignature(imageData) {
		slog.Debug("EncodeCommand: already PNG, no conversion needed")
		return imageData, nil
	}

	img, err := png.Decode(bytes.NewReader(imageData))
	if err != nil {
		slog.Error("EncodeCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	var buf bytes.Buffer
	if err := encode(&buf, img, c.params.Format); err != nil {
		slog.Error("EncodeCommand: failed to encode image",
			"target_format", c.params.Format,
			"error", err)
		return nil, fmt.Errorf("failed to encode image to %s: %w", c.params.Format, err)
	}

	slog.Debug("EncodeCommand: encoding complete",
		"output_size_bytes", buf.Len(),
		"output_format", c.params.Format)

	return buf.Bytes(), nil
}

// GetFormat returns the canonical target format
func (c *EncodeCommand) GetFormat() string {
	return c.params.Format
}

func encode(buf *bytes.Buffer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(buf, img)
	case "jpeg":
		return jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		return gif.Encode(buf, img, nil)
	case "bmp":
		return bmp.Encode(buf, img)
	case "tiff":
		return tiff.Encode(buf, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

func init() {
	if err := commandstructure.DefaultRegistry.Register("EncodeCommand", NewEncodeCommand); err != nil {
		panic(fmt.Sprintf("failed to register EncodeCommand: %v", err))
	}
}
