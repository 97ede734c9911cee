package contract

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/viratco/klord/schema"
)

// MockRecordSource is a mock implementation of RecordSource for testing.
type MockRecordSource struct {
	mock.Mock
}

var _ RecordSource = &MockRecordSource{} // Compile-time check

// FetchRecords implements the RecordSource interface.
func (m *MockRecordSource) FetchRecords(ctx context.Context) ([]schema.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.Record)
	return records, args.Error(1)
}

// Describe implements the RecordSource interface.
func (m *MockRecordSource) Describe() string {
	return "mock"
}
