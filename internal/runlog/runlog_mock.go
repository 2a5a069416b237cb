package runlog

import (
	"time"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
	"github.com/stretchr/testify/mock"
)

// MockRunManager is a mock implementation of RunManager for testing.
type MockRunManager struct {
	mock.Mock
}

var _ contract.RunManager = &MockRunManager{} // Compile-time check

// GetRunStore implements the RunManager interface.
func (m *MockRunManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(command string, startTime time.Time, configParams map[string]any) (int64, string, error) {
	args := m.Called(command, startTime, configParams)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, sampleCount int) error {
	args := m.Called(runID, endTime, sampleCount)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStatus), args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
