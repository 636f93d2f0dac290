package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apierrors "aeroreduce/internal/errors"
	"aeroreduce/internal/exporter"
	"aeroreduce/internal/infrastructure"
	"aeroreduce/internal/middleware"
	"aeroreduce/internal/services"
	"aeroreduce/internal/validation"
	api "aeroreduce/pkg/contracts/api/v1"
)

// errAllCasesFailed is returned when a sweep produced no result at all
var errAllCasesFailed = errors.New("every case of the sweep failed")

type sweepCommand struct {
	opts     *rootOptions
	input    string
	outDir   string
	workbook bool
	wake     bool
	failFast bool
}

func newSweepCommand(opts *rootOptions) *cobra.Command {
	c := &sweepCommand{opts: opts}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Reduce a sweep file and export coefficient tables",
		Long: `Reads a JSON sweep request, reduces every case and writes coefficients.csv
and cp.csv (plus wake.csv and sweep.xlsx on request) into the output directory.
Failed cases are logged and skipped; the command fails only when no case could
be reduced, or on the first failure with --fail-fast.`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	flags := cmd.Flags()
	flags.StringVarP(&c.input, "input", "i", "", "sweep request JSON file")
	flags.StringVarP(&c.outDir, "out-dir", "o", "results", "output directory")
	flags.BoolVar(&c.workbook, "xlsx", false, "also write sweep.xlsx")
	flags.BoolVar(&c.wake, "wake", false, "also write wake.csv")
	flags.BoolVar(&c.failFast, "fail-fast", false, "stop at the first failed case")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (c *sweepCommand) run(cmd *cobra.Command, _ []string) error {
	ctx := infrastructure.EnsureTraceID(cmd.Context())
	cfg, err := c.opts.load()
	if err != nil {
		return err
	}
	logger, err := c.opts.logger(cfg)
	if err != nil {
		return err
	}

	files := validation.NewFileValidator(logger)
	if err := files.ValidateInputFile(c.input, ".json"); err != nil {
		return err
	}
	req, err := readSweepRequest(c.input)
	if err != nil {
		return err
	}
	if err := middleware.NewRequestValidator(logger).Struct(req); err != nil {
		return fmt.Errorf("%s: %s", c.input, describeValidation(err))
	}
	if err := files.ValidateOutputDirectory(c.outDir); err != nil {
		return err
	}
	req.FailFast = req.FailFast || c.failFast

	svc, err := services.NewReductionService(cfg, nil, nil, logger)
	if err != nil {
		return err
	}

	run, runErr := svc.RunSweep(ctx, req)
	for _, f := range run.Result.Failures {
		logger.WarnContext(ctx, "case failed",
			slog.Int("index", f.Index),
			slog.String("case_id", f.ID),
			slog.Float64("alpha", f.Alpha),
			slog.String("kind", services.FailureKind(f.Err)),
			slog.String("error", f.Err.Error()))
	}

	written, err := exporter.NewWriter(c.outDir, logger).Export(run.Result, run.Summary, svc.AeroConfig(), exporter.Options{
		Wake:     c.wake || cfg.Sweep.IncludeWake,
		Workbook: c.workbook,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	if runErr != nil {
		return runErr
	}
	if !run.Result.Succeeded() {
		return errAllCasesFailed
	}
	logger.InfoContext(ctx, "sweep finished",
		slog.String("run_id", run.RunID),
		slog.Int("succeeded", len(run.Result.Results)),
		slog.Int("failed", len(run.Result.Failures)))
	return nil
}

func readSweepRequest(path string) (api.SweepRequest, error) {
	var req api.SweepRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read sweep file: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%s: invalid JSON: %w", path, err)
	}
	return req, nil
}

// describeValidation flattens a request validation error into one line
func describeValidation(err error) string {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	details, ok := apiErr.Details.([]apierrors.ValidationError)
	if !ok || len(details) == 0 {
		return apiErr.Message
	}
	parts := make([]string, len(details))
	for i, d := range details {
		parts[i] = d.Field + ": " + d.Message
	}
	return strings.Join(parts, "; ")
}
