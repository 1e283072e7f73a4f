package iostore

import (
	"time"

	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginScan implements the HistoryStore interface.
func (m *MockHistoryStore) BeginScan(startTime time.Time, repoPath string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, repoPath, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordObject implements the HistoryStore interface.
func (m *MockHistoryStore) RecordObject(scanID int64, rank int, object schema.ObjectRecord) error {
	args := m.Called(scanID, rank, object)
	return args.Error(0)
}

// EndScan implements the HistoryStore interface.
func (m *MockHistoryStore) EndScan(scanID int64, result *schema.ScanResult) error {
	args := m.Called(scanID, result)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllScanRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllScanRuns() ([]schema.ScanRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ScanRunRecord)
	return runs, args.Error(1)
}

// GetAllScanObjects implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllScanObjects() ([]schema.ScanObjectRecord, error) {
	args := m.Called()
	objects, _ := args.Get(0).([]schema.ScanObjectRecord)
	return objects, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
