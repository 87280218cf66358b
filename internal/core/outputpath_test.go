package core

import (
	"path/filepath"
	"testing"
)

func TestLabeledOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Png", "foo.png", "foo_labeled.png"},
		{"No extension", "foo", "foo_labeled.png"},
		{"Trailing dot", "foo.", "foo_labeled.png"},
		{"Keeps extension case", "Sprite.JPG", "Sprite_labeled.JPG"},
		{"Only last extension", "mask.tar.bmp", "mask.tar_labeled.bmp"},
		{"Directory kept", filepath.Join("assets", "tex.gif"), filepath.Join("assets", "tex_labeled.gif")},
		{"Dot in directory ignored", filepath.Join("v1.2", "mask"), filepath.Join("v1.2", "mask_labeled.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabeledOutputPath(tt.input, "_labeled", "png"); got != tt.expected {
				t.Errorf("LabeledOutputPath(%q): expected %q, got %q", tt.input, tt.expected, got)
			}
		})
	}
}

func TestLabeledOutputPath_CustomSuffixAndExtension(t *testing.T) {
	if got := LabeledOutputPath("foo", "_grid", "bmp"); got != "foo_grid.bmp" {
		t.Errorf("Expected 'foo_grid.bmp', got %q", got)
	}
}
