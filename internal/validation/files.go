// Package validation checks the files and directories a batch run touches
// before any reduction work starts.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator validates command-line inputs and outputs
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputFile checks that path is a readable regular file. When
// extensions are given, the file must carry one of them (case-insensitive).
func (v *FileValidator) ValidateInputFile(path string, extensions ...string) error {
	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("input file not accessible",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file %s is a directory", path)
	}

	if len(extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		matched := false
		for _, want := range extensions {
			if ext == strings.ToLower(want) {
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("input file %s: extension %q not one of %s", path, ext, strings.Join(extensions, ", "))
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("input file %s is not readable: %w", path, err)
	}
	f.Close()

	v.logger.Debug("input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory creates dir if needed and probes that it is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	v.logger.Debug("output directory validated", slog.String("directory", dir))
	return nil
}
