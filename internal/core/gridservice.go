package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jo-hoe/pixelgrid/internal/backend/commands"
	"github.com/jo-hoe/pixelgrid/internal/backend/commandstructure"
)

type GridService struct {
	config *ServiceConfig
}

func NewGridService(config *ServiceConfig) *GridService {
	return &GridService{
		config: config,
	}
}

// GeneratePixelGrid renders the labelled intensity grid of the image at
// inputPath and writes it next to the input. It returns the output path.
// Nothing is written if any step fails.
func (service *GridService) GeneratePixelGrid(inputPath string) (string, error) {
	outputPath, format, err := service.resolveOutput(inputPath)
	if err != nil {
		return "", err
	}

	imageData, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", inputPath, err)
	}

	slog.Debug("generating pixel grid",
		"input_path", inputPath,
		"output_path", outputPath,
		"output_format", format,
		"scale", service.config.Scale)

	output, err := commandstructure.ExecuteCommands(imageData, service.pipeline(format))
	if err != nil {
		return "", fmt.Errorf("failed to process image %s: %w", inputPath, err)
	}

	if err := os.WriteFile(outputPath, output, 0644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", outputPath, err)
	}

	slog.Info("pixel grid written", "output_path", outputPath, "size_bytes", len(output))
	return outputPath, nil
}

// resolveOutput derives the output path and encoder. Inputs whose extension
// has no encoder (svg, webp) are written with the default extension instead.
func (service *GridService) resolveOutput(inputPath string) (string, string, error) {
	outputPath := LabeledOutputPath(inputPath, service.config.OutputSuffix, service.config.DefaultExtension)
	if format, ok := commands.NormalizeFormat(filepath.Ext(outputPath)); ok {
		return outputPath, format, nil
	}

	fallbackPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "." + service.config.DefaultExtension
	format, ok := commands.NormalizeFormat(service.config.DefaultExtension)
	if !ok {
		return "", "", fmt.Errorf("unsupported output format for %s", outputPath)
	}
	slog.Warn("output format not writable, using default extension",
		"requested_path", outputPath,
		"output_path", fallbackPath)
	return fallbackPath, format, nil
}

// pipeline lists the commands run for one image: normalise to PNG, the
// configured preprocessing, channel extraction, rendering and final encoding
func (service *GridService) pipeline(format string) []commandstructure.CommandConfig {
	configs := []commandstructure.CommandConfig{
		{
			Name: "PngConverterCommand",
			Params: map[string]any{
				"svgFallbackWidth":  service.config.SvgFallbackWidth,
				"svgFallbackHeight": service.config.SvgFallbackHeight,
			},
		},
	}

	for _, cmd := range service.config.Commands {
		configs = append(configs, commandstructure.CommandConfig{
			Name:   cmd.Name,
			Params: cmd.Params,
		})
	}

	return append(configs,
		commandstructure.CommandConfig{Name: "RedChannelCommand"},
		commandstructure.CommandConfig{
			Name: "PixelGridCommand",
			Params: map[string]any{
				"scale":     service.config.Scale,
				"fontScale": service.config.FontScale,
				"fontPath":  service.config.FontPath,
			},
		},
		commandstructure.CommandConfig{
			Name:   "EncodeCommand",
			Params: map[string]any{"format": format},
		},
	)
}
