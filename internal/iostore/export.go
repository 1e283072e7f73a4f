package iostore

import (
	"errors"
	"fmt"

	"github.com/huangsam/gitbloat/internal/parquet"
)

// ExecuteHistoryExport writes the recorded scan history to two Parquet files
// named after outputFile.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("scan history is disabled; set --history-backend to export")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalScans == 0 {
		return errors.New("no scan history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scans: %d\n", status.TotalScans)
	fmt.Printf("Total object records: %d\n", status.TableSizes[scanObjectsTable])

	runs, err := store.GetAllScanRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scan runs: %w", err)
	}
	objects, err := store.GetAllScanObjects()
	if err != nil {
		return fmt.Errorf("failed to retrieve scan objects: %w", err)
	}

	parquetRuns := parquet.ScanRunsFromRecords(runs)
	runsFile := outputFile + ".scan_runs.parquet"
	if err := parquet.WriteScanRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write scan runs: %w", err)
	}
	fmt.Printf("Exported %d scan runs to: %s\n", len(parquetRuns), runsFile)

	parquetObjects := parquet.ScanObjectsFromRecords(objects)
	objectsFile := outputFile + ".scan_objects.parquet"
	if err := parquet.WriteScanObjectsParquet(parquetObjects, objectsFile); err != nil {
		return fmt.Errorf("failed to write scan objects: %w", err)
	}
	fmt.Printf("Exported %d object records to: %s\n", len(parquetObjects), objectsFile)

	return nil
}
