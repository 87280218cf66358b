package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jo-hoe/pixelgrid/internal/core"
)

const usage = "Usage: pixelgrid <image_path>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. The argument count is checked before
// anything touches the filesystem.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	config, err := core.LoadConfigFromEnvironment()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	core.ConfigureLogger(stderr, config.LogLevel)

	outputPath, err := core.NewGridService(config).GeneratePixelGrid(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error processing the image: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Labeled image saved as %s\n", outputPath)
	return 0
}
