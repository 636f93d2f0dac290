package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeroreduce/internal/config"
	"aeroreduce/internal/services"
	"aeroreduce/internal/shared/testutil"
	"aeroreduce/pkg/contracts"
	api "aeroreduce/pkg/contracts/api/v1"
)

const testConfigYAML = testutil.SectionYAML + `
logging:
  level: debug
sweep:
  max_concurrency: 2
  summary: true
`

func discardLoggers(config.LoggingConfig) (*slog.Logger, error) {
	return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
}

type fixture struct {
	dir    string
	config string
	outDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{dir: dir, config: filepath.Join(dir, "aeroreduce.yaml"), outDir: filepath.Join(dir, "out")}
	require.NoError(t, os.WriteFile(f.config, []byte(testConfigYAML), 0o644))
	return f
}

func (f fixture) writeSweep(t *testing.T, req api.SweepRequest) string {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	path := filepath.Join(f.dir, "sweep.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWith(t, discardLoggers, args...)
}

func executeWith(t *testing.T, newLogger loggerFactory, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(newLogger)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSweepCommand(t *testing.T) {
	f := newFixture(t)
	input := f.writeSweep(t, api.SweepRequest{
		Name:  "polar",
		Cases: []api.CaseRequest{testutil.CaseRequest("a0", 0), testutil.BrokenCase("a4", 4), testutil.CaseRequest("a8", 8)},
	})

	logger, logs := testutil.NewLogger()
	out, err := executeWith(t, func(config.LoggingConfig) (*slog.Logger, error) { return logger, nil },
		"sweep", "--config", f.config, "--input", input, "--out-dir", f.outDir, "--xlsx", "--wake")
	require.NoError(t, err)

	failed := testutil.AssertLogged(t, logs, slog.LevelWarn, "case failed")
	assert.Equal(t, "a4", failed.Attrs["case_id"])
	assert.Equal(t, services.KindPrecondition, failed.Attrs["kind"])
	testutil.AssertLogged(t, logs, slog.LevelInfo, "sweep finished")

	for _, name := range []string{
		config.CoefficientsFileName,
		config.PressureFileName,
		config.WakeFileName,
		config.WorkbookFileName,
	} {
		path := filepath.Join(f.outDir, name)
		assert.FileExists(t, path)
		assert.Contains(t, out, path)
	}

	data, err := os.ReadFile(filepath.Join(f.outDir, config.CoefficientsFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "header plus the two reduced cases")
	assert.True(t, strings.HasPrefix(lines[1], "a0,"))
	assert.True(t, strings.HasPrefix(lines[2], "a8,"))
}

func TestSweepCommandAllFailed(t *testing.T) {
	f := newFixture(t)
	input := f.writeSweep(t, api.SweepRequest{
		Cases: []api.CaseRequest{testutil.BrokenCase("a0", 0), testutil.BrokenCase("a4", 4)},
	})

	_, err := execute(t, "sweep", "--config", f.config, "--input", input, "--out-dir", f.outDir)
	assert.ErrorIs(t, err, errAllCasesFailed)
	assert.FileExists(t, filepath.Join(f.outDir, config.CoefficientsFileName))
}

func TestSweepCommandFailFast(t *testing.T) {
	f := newFixture(t)
	input := f.writeSweep(t, api.SweepRequest{
		Cases: []api.CaseRequest{testutil.BrokenCase("a0", 0), testutil.CaseRequest("a4", 4)},
	})

	_, err := execute(t, "sweep", "--config", f.config, "--input", input, "--out-dir", f.outDir, "--fail-fast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep aborted")
	assert.Equal(t, services.KindPrecondition, services.FailureKind(err))
}

func TestSweepCommandInvalidInput(t *testing.T) {
	f := newFixture(t)

	t.Run("validation", func(t *testing.T) {
		bad := testutil.CaseRequest("a0", 120)
		input := f.writeSweep(t, api.SweepRequest{Cases: []api.CaseRequest{bad}})
		_, err := execute(t, "sweep", "--config", f.config, "--input", input, "--out-dir", f.outDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cases[0].alpha")
		assert.NoDirExists(t, f.outDir)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(f.dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cases": [`), 0o644))
		_, err := execute(t, "sweep", "--config", f.config, "--input", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
	})

	t.Run("missing input flag", func(t *testing.T) {
		_, err := execute(t, "sweep", "--config", f.config)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "sweep", "--config", f.config, "--input", filepath.Join(f.dir, "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSweepCommandNoGeometry(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.config, []byte("sweep:\n  max_concurrency: 1\n"), 0o644))
	input := f.writeSweep(t, api.SweepRequest{Cases: []api.CaseRequest{testutil.CaseRequest("a0", 0)}})

	_, err := execute(t, "sweep", "--config", f.config, "--input", input, "--out-dir", f.outDir)
	assert.ErrorIs(t, err, config.ErrNoGeometry)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, contracts.GetVersionString())

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info contracts.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, contracts.Version, info.Version)
}

func TestTemplateCommand(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "template", "--config", f.config, "--alpha", "0,4.5")
	require.NoError(t, err)

	var req api.SweepRequest
	require.NoError(t, json.Unmarshal([]byte(out), &req))
	require.Len(t, req.Cases, 2)
	assert.Equal(t, "a4.5", req.Cases[1].ID)
	assert.Len(t, req.Cases[0].Pressures.Top, 5)
	assert.Len(t, req.Cases[0].Pressures.Bottom, 5)
	assert.Len(t, req.Cases[0].Rake.Config2, testutil.RakePorts)

	path := filepath.Join(f.dir, "template.json")
	_, err = execute(t, "template", "--config", f.config, "--out", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &req))
	assert.Len(t, req.Cases, 11, "reference sweep angles")

	_, err = execute(t, "template", "--config", f.config, "--offset", "0.01,0.01")
	assert.ErrorContains(t, err, "distinct rake offsets")
}

func TestTemplateCommandFilledSweepReduces(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "template", "--config", f.config, "--alpha", "0,8")
	require.NoError(t, err)
	var req api.SweepRequest
	require.NoError(t, json.Unmarshal([]byte(out), &req))
	assert.NotEqual(t, req.Cases[0].Rake.Offset1, req.Cases[0].Rake.Offset2)

	for i := range req.Cases {
		filled := testutil.CaseRequest(req.Cases[i].ID, req.Cases[i].Alpha)
		req.Cases[i].Pressures = filled.Pressures
		req.Cases[i].Rake.Config1 = filled.Rake.Config1
		req.Cases[i].Rake.Config2 = filled.Rake.Config2
	}

	_, err = execute(t, "sweep", "--config", f.config, "--input", f.writeSweep(t, req), "--out-dir", f.outDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.outDir, config.CoefficientsFileName))
}
