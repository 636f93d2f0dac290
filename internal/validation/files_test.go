package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValidator() *FileValidator {
	return NewFileValidator(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	sweep := filepath.Join(dir, "sweep.json")
	require.NoError(t, os.WriteFile(sweep, []byte(`{}`), 0o644))
	upper := filepath.Join(dir, "SWEEP.JSON")
	require.NoError(t, os.WriteFile(upper, []byte(`{}`), 0o644))

	tests := []struct {
		name          string
		path          string
		extensions    []string
		wantErr       bool
		errorContains string
	}{
		{name: "json file", path: sweep, extensions: []string{".json"}},
		{name: "any extension", path: sweep},
		{name: "extension case-insensitive", path: upper, extensions: []string{".json"}},
		{name: "wrong extension", path: sweep, extensions: []string{".csv", ".txt"}, wantErr: true, errorContains: "not one of .csv, .txt"},
		{name: "directory", path: dir, wantErr: true, errorContains: "is a directory"},
		{name: "missing", path: filepath.Join(dir, "nope.json"), wantErr: true, errorContains: "input file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testValidator().ValidateInputFile(tt.path, tt.extensions...)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestValidateInputFileMissingIsNotExist(t *testing.T) {
	err := testValidator().ValidateInputFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateOutputDirectory(t *testing.T) {
	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		require.NoError(t, testValidator().ValidateOutputDirectory(dir))
		assert.DirExists(t, dir)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "write probe must be removed")
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "taken")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		err := testValidator().ValidateOutputDirectory(file)
		assert.Error(t, err)
	})
}
