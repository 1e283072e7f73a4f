// Package outwriter has output and writer logic.
package outwriter

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/gitbloat/core/algo"
	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/internal/parquet"
	"github.com/huangsam/gitbloat/schema"
)

// WriteObjectResults outputs the scan results, dispatching based on the output format configured.
// Results go to cfg.OutputFile when set, otherwise to stdout.
func WriteObjectResults(result *schema.ScanResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		if err := writeObjectParquet(result, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeObjects(w, result, cfg, duration)
	}, "Wrote "+formatLabel(cfg.Output))
}

// writeObjects renders the results for every stream-based format.
func writeObjects(w io.Writer, result *schema.ScanResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeObjectJSON(w, result, duration); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeObjectCSV(w, result); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TableOut:
		if err := writeObjectTable(w, result, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	case schema.ParquetOut:
		return errors.New("parquet output requires a file")
	default:
		return writeObjectText(w, result)
	}
	return nil
}

// formatLabel names a format in the "Wrote ..." status line.
func formatLabel(mode schema.OutputMode) string {
	switch mode {
	case schema.JSONOut:
		return "JSON"
	case schema.CSVOut:
		return "CSV"
	case schema.TableOut:
		return "table"
	case schema.ParquetOut:
		return "Parquet"
	default:
		return "text"
	}
}

// writeObjectParquet writes the ranked objects as one Parquet row each.
func writeObjectParquet(result *schema.ScanResult, outputFile string) error {
	if outputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	rows := parquet.LargeObjectsFromResults(algo.EnrichObjects(result.Objects))
	if err := parquet.WriteLargeObjectsParquet(rows, outputFile); err != nil {
		return err
	}
	reportWrite("Wrote Parquet", outputFile)
	return nil
}
