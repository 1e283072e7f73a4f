package iostore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitbloat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScanResult(start time.Time) *schema.ScanResult {
	return &schema.ScanResult{
		RepoPath: "/test/repo",
		Objects: []schema.ObjectRecord{
			{Size: 3145728, Hash: "h3", Path: "b/c.txt"},
			{Size: 2048, Hash: "h2"},
		},
		TotalObjects:    4,
		ResolvedObjects: 3,
		SkippedObjects:  1,
		ManifestDigest:  "abc123",
		StartTime:       start,
		EndTime:         start.Add(1500 * time.Millisecond),
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	scanID, err := store.BeginScan(time.Now(), "/repo", map[string]any{"limit": 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), scanID)

	assert.NoError(t, store.RecordObject(1, 1, schema.ObjectRecord{Size: 1, Hash: "h"}))
	assert.NoError(t, store.EndScan(1, sampleScanResult(time.Now())))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	runs, err := store.GetAllScanRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	assert.NoError(t, store.Close())
}

func TestHistoryStore_SQLite(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	result := sampleScanResult(start)

	scanID, err := store.BeginScan(start, result.RepoPath, map[string]any{"limit": 2, "output": "text"})
	require.NoError(t, err)
	assert.Greater(t, scanID, int64(0))

	for i, obj := range result.Objects {
		require.NoError(t, store.RecordObject(scanID, i+1, obj))
	}
	require.NoError(t, store.EndScan(scanID, result))

	runs, err := store.GetAllScanRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, scanID, run.ScanID)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, result.EndTime.Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int64(1500), *run.RunDurationMs)
	assert.Equal(t, "/test/repo", run.RepoPath)
	require.NotNil(t, run.ManifestDigest)
	assert.Equal(t, "abc123", *run.ManifestDigest)
	require.NotNil(t, run.TotalObjects)
	assert.Equal(t, int64(4), *run.TotalObjects)
	require.NotNil(t, run.SkippedObjects)
	assert.Equal(t, int64(1), *run.SkippedObjects)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"limit": 2, "output": "text"}`, *run.ConfigParams)

	objects, err := store.GetAllScanObjects()
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, schema.ScanObjectRecord{ScanID: scanID, ObjectRank: 1, ObjectHash: "h3", ObjectPath: "b/c.txt", SizeBytes: 3145728}, objects[0])
	assert.Equal(t, schema.ScanObjectRecord{ScanID: scanID, ObjectRank: 2, ObjectHash: "h2", ObjectPath: "", SizeBytes: 2048}, objects[1])
}

func TestHistoryStore_SQLiteUnfinishedScan(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.BeginScan(time.Now(), "/repo", nil)
	require.NoError(t, err)

	runs, err := store.GetAllScanRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Nil(t, runs[0].ManifestDigest)
}

func TestHistoryStore_Status(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalScans)
	assert.Equal(t, int64(0), status.TableSizes[scanRunsTable])

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)
	for _, start := range []time.Time{first, second} {
		scanID, err := store.BeginScan(start, "/repo", nil)
		require.NoError(t, err)
		result := sampleScanResult(start)
		require.NoError(t, store.RecordObject(scanID, 1, result.Objects[0]))
		require.NoError(t, store.EndScan(scanID, result))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalScans)
	assert.Equal(t, int64(2), status.LastScanID)
	assert.True(t, second.Equal(status.LastScanTime))
	assert.True(t, first.Equal(status.OldestScanTime))
	assert.Equal(t, int64(8), status.TotalObjects)
	assert.Equal(t, int64(2), status.TableSizes[scanRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[scanObjectsTable])
}

func TestHistoryStore_SQLitePersistsAcrossOpens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginScan(time.Now(), "/repo", nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	runs, err := reopened.GetAllScanRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNewHistoryStore_InvalidConnections(t *testing.T) {
	_, err := NewHistoryStore(schema.MySQLBackend, "not a dsn")
	assert.Error(t, err)

	_, err = NewHistoryStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
