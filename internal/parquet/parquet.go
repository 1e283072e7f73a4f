// Package parquet provides data structures and functions for exporting gitbloat
// scan data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gitbloat/schema"
	"github.com/parquet-go/parquet-go"
)

// ScanRun represents a single scan with its summary counters.
// This struct maps to the gitbloat_scan_runs database table.
type ScanRun struct {
	// ScanID is the unique identifier for this scan
	ScanID int64 `parquet:"scan_id,snappy"`

	// StartTime is when the scan began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the scan completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the scan in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// RepoPath is the repository root that was scanned
	RepoPath string `parquet:"repo_path,snappy"`

	// ManifestDigest is the BLAKE3 digest of the object manifest (nullable)
	ManifestDigest *string `parquet:"manifest_digest,optional,snappy"`

	TotalObjects    *int64 `parquet:"total_objects,optional,snappy"`
	ResolvedObjects *int64 `parquet:"resolved_objects,optional,snappy"`
	SkippedObjects  *int64 `parquet:"skipped_objects,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ScanObject represents one ranked object recorded for a scan.
// This struct maps to the gitbloat_scan_objects database table.
type ScanObject struct {
	ScanID     int64  `parquet:"scan_id,snappy"`
	ObjectRank int32  `parquet:"object_rank,snappy"`
	ObjectHash string `parquet:"object_hash,snappy"`
	ObjectPath string `parquet:"object_path,snappy"`
	SizeBytes  int64  `parquet:"size_bytes,snappy"`
}

// LargeObject is one row of the --output parquet report.
type LargeObject struct {
	Rank      int32  `parquet:"rank,snappy"`
	SizeBytes int64  `parquet:"size_bytes,snappy"`
	SizeHuman string `parquet:"size_human,snappy"`
	Band      string `parquet:"band,snappy"`
	Hash      string `parquet:"hash,snappy"`
	Path      string `parquet:"path,snappy"`
}

// WriteScanRunsParquet writes a slice of ScanRun structs to a Parquet file.
func WriteScanRunsParquet(data []ScanRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteScanObjectsParquet writes a slice of ScanObject structs to a Parquet file.
func WriteScanObjectsParquet(data []ScanObject, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteLargeObjectsParquet writes a slice of LargeObject structs to a Parquet file.
func WriteLargeObjectsParquet(data []LargeObject, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet creates outputPath and writes all rows using the schema inferred from T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ScanRunsFromRecords converts stored scan runs to Parquet rows.
func ScanRunsFromRecords(records []schema.ScanRunRecord) []ScanRun {
	rows := make([]ScanRun, len(records))
	for i, r := range records {
		rows[i] = ScanRun{
			ScanID:          r.ScanID,
			StartTime:       r.StartTime,
			EndTime:         r.EndTime,
			RunDurationMs:   r.RunDurationMs,
			RepoPath:        r.RepoPath,
			ManifestDigest:  r.ManifestDigest,
			TotalObjects:    r.TotalObjects,
			ResolvedObjects: r.ResolvedObjects,
			SkippedObjects:  r.SkippedObjects,
			ConfigParams:    r.ConfigParams,
		}
	}
	return rows
}

// ScanObjectsFromRecords converts stored scan objects to Parquet rows.
func ScanObjectsFromRecords(records []schema.ScanObjectRecord) []ScanObject {
	rows := make([]ScanObject, len(records))
	for i, r := range records {
		rows[i] = ScanObject{
			ScanID:     r.ScanID,
			ObjectRank: int32(r.ObjectRank),
			ObjectHash: r.ObjectHash,
			ObjectPath: r.ObjectPath,
			SizeBytes:  r.SizeBytes,
		}
	}
	return rows
}

// LargeObjectsFromResults converts enriched results to report rows.
func LargeObjectsFromResults(results []schema.EnrichedObjectResult) []LargeObject {
	rows := make([]LargeObject, len(results))
	for i, r := range results {
		rows[i] = LargeObject{
			Rank:      int32(r.Rank),
			SizeBytes: r.Size,
			SizeHuman: r.HumanSize,
			Band:      string(r.Band),
			Hash:      r.Hash,
			Path:      r.Path,
		}
	}
	return rows
}
