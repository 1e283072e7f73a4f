package schema

import "time"

// ScanRunRecord represents a row from the gitbloat_scan_runs table.
type ScanRunRecord struct {
	ScanID          int64
	StartTime       time.Time
	EndTime         *time.Time
	RunDurationMs   *int64
	RepoPath        string
	ManifestDigest  *string
	TotalObjects    *int64
	ResolvedObjects *int64
	SkippedObjects  *int64
	ConfigParams    *string
}

// ScanObjectRecord represents a row from the gitbloat_scan_objects table.
type ScanObjectRecord struct {
	ScanID     int64
	ObjectRank int
	ObjectHash string
	ObjectPath string
	SizeBytes  int64
}
