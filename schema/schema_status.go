package schema

import "time"

// HistoryStatus represents the status of the scan history store.
type HistoryStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalScans     int              `json:"total_scans"`
	LastScanID     int64            `json:"last_scan_id"`
	LastScanTime   time.Time        `json:"last_scan_time"`
	OldestScanTime time.Time        `json:"oldest_scan_time"`
	TotalObjects   int64            `json:"total_objects"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}
