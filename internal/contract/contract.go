// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gitbloat/schema"
)

// ObjectSource is the narrow view of git that the object lister needs.
// Both methods return the raw command output so that parsing stays in core.
type ObjectSource interface {
	// ListObjects returns the output of `git rev-list --all --objects`.
	ListObjects(ctx context.Context, repoPath string) ([]byte, error)

	// ObjectSize returns the output of `git cat-file -s <hash>`.
	ObjectSize(ctx context.Context, repoPath string, hash string) ([]byte, error)
}

// GitClient defines the git operations used across gitbloat.
// This allows the core logic to be tested without needing a real git executable.
type GitClient interface {
	ObjectSource

	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// HistoryManager gives access to the process-wide history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore records finished scans. It is never read back to shortcut a scan.
type HistoryStore interface {
	// BeginScan creates a new scan run and returns its unique ID
	BeginScan(startTime time.Time, repoPath string, configParams map[string]any) (int64, error)

	// RecordObject stores one ranked object for a scan
	RecordObject(scanID int64, rank int, object schema.ObjectRecord) error

	// EndScan updates the scan run with completion data
	EndScan(scanID int64, result *schema.ScanResult) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllScanRuns returns every recorded scan run ordered by ID
	GetAllScanRuns() ([]schema.ScanRunRecord, error)

	// GetAllScanObjects returns every recorded object ordered by scan and rank
	GetAllScanObjects() ([]schema.ScanObjectRecord, error)

	// Close closes the underlying connection
	Close() error
}
