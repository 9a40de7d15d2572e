package apiclient

import (
	"context"
	"encoding/json"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/stretchr/testify/mock"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	mock.Mock
}

var _ contract.APIClient = &MockAPIClient{} // Compile-time check

func (m *MockAPIClient) raw(args mock.Arguments) (json.RawMessage, error) {
	payload, _ := args.Get(0).(json.RawMessage)
	return payload, args.Error(1)
}

// GetDashboardSummary implements the APIClient interface.
func (m *MockAPIClient) GetDashboardSummary(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

// GetDashboardTrend implements the APIClient interface.
func (m *MockAPIClient) GetDashboardTrend(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

// GetChartSeries implements the APIClient interface.
func (m *MockAPIClient) GetChartSeries(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

// GetMetricSummaries implements the APIClient interface.
func (m *MockAPIClient) GetMetricSummaries(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

// GetCorrelations implements the APIClient interface.
func (m *MockAPIClient) GetCorrelations(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

// GetProviders implements the APIClient interface.
func (m *MockAPIClient) GetProviders(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

// GetHealthRecords implements the APIClient interface.
func (m *MockAPIClient) GetHealthRecords(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

// GetAppointments implements the APIClient interface.
func (m *MockAPIClient) GetAppointments(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}
