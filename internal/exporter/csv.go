package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"aeroreduce/internal/aero"
	"aeroreduce/internal/config"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer exports reduced sweeps into a directory
type Writer struct {
	outDir string
	logger *slog.Logger
}

// NewWriter creates a writer for outDir
func NewWriter(outDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{outDir: outDir, logger: logger.With(slog.String("component", "exporter"))}
}

// Options selects the optional outputs of Export
type Options struct {
	// Wake writes wake.csv; cases must carry their wake profile
	Wake bool
	// Workbook writes sweep.xlsx
	Workbook bool
}

// Export writes every selected output and returns the written paths
func (w *Writer) Export(result aero.SweepResult, summary *aero.SweepSummary, cfg aero.Config, opts Options) ([]string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	add := func(name string, write func(path string) error) error {
		path := filepath.Join(w.outDir, name)
		if err := write(path); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	err := add(config.CoefficientsFileName, func(path string) error {
		return w.WriteCoefficientsCSV(path, result.Results)
	})
	if err != nil {
		return written, err
	}
	err = add(config.PressureFileName, func(path string) error {
		return w.WriteCpCSV(path, result.Results, cfg)
	})
	if err != nil {
		return written, err
	}
	if opts.Wake {
		err = add(config.WakeFileName, func(path string) error {
			return w.WriteWakeCSV(path, result.Results)
		})
		if err != nil {
			return written, err
		}
	}
	if opts.Workbook {
		path := filepath.Join(w.outDir, config.WorkbookFileName)
		if err := WriteWorkbook(path, result, summary, cfg); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	w.logger.Info("sweep exported",
		slog.String("out_dir", w.outDir),
		slog.Int("files", len(written)),
		slog.Int("cases", len(result.Results)),
	)
	return written, nil
}

// WriteCoefficientsCSV writes coefficients.csv-style output to path
func (w *Writer) WriteCoefficientsCSV(path string, results []aero.CaseResult) error {
	return w.writeCSV(path, coefficientsTable(results))
}

// WriteCpCSV writes cp.csv-style output to path
func (w *Writer) WriteCpCSV(path string, results []aero.CaseResult, cfg aero.Config) error {
	return w.writeCSV(path, pressureTable(results, cfg.Layout, cfg.Chord))
}

// WriteWakeCSV writes wake.csv-style output to path
func (w *Writer) WriteWakeCSV(path string, results []aero.CaseResult) error {
	return w.writeCSV(path, wakeTable(results))
}

func (w *Writer) writeCSV(path string, t table) (err error) {
	w.logger.Debug("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(t.rows)))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(t.headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range t.rows {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
