package core

import (
	"path/filepath"
	"strings"
)

// LabeledOutputPath places the output next to inputPath, named
// <stem><suffix>.<ext>. Only the file name is inspected for an extension;
// defaultExt is used when it has none.
func LabeledOutputPath(inputPath, suffix, defaultExt string) string {
	dir, file := filepath.Split(inputPath)
	ext := filepath.Ext(file)
	stem := strings.TrimSuffix(file, ext)

	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = defaultExt
	}
	return dir + stem + suffix + "." + ext
}
