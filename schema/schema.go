// Package schema has models, enums and status types for all parts of gitbloat.
package schema

import "time"

// ManifestEntry is one line of the object manifest produced by
// `git rev-list --all --objects`. Path is empty for commits and for
// objects that git reports without a name.
type ManifestEntry struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// ObjectRecord is a manifest entry whose size lookup succeeded.
type ObjectRecord struct {
	Size int64  `json:"size_bytes"` // Stored size in bytes, never negative
	Hash string `json:"hash"`       // Object identifier as printed by git
	Path string `json:"path"`       // Associated path, may be empty
}

// ScanResult is the outcome of one full pass over a repository.
type ScanResult struct {
	RepoPath        string         `json:"repo_path"`
	Objects         []ObjectRecord `json:"objects"` // Ranked and truncated
	Lines           []string       `json:"-"`       // Formatted report lines for Objects
	TotalObjects    int            `json:"total_objects"`
	ResolvedObjects int            `json:"resolved_objects"`
	SkippedObjects  int            `json:"skipped_objects"`
	ManifestDigest  string         `json:"manifest_digest"`
	StartTime       time.Time      `json:"start_time"`
	EndTime         time.Time      `json:"end_time"`
}

// Duration returns how long the scan took.
func (r *ScanResult) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
