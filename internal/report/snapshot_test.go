package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersight/internal/metrics"
)

func TestNewSnapshot(t *testing.T) {
	now := time.Now()
	r := &metrics.Report{
		GeneratedAt: now,
		Customers: metrics.ResultOf(metrics.CustomerMetrics{
			TotalOrders:    120,
			TotalCustomers: 40,
			TotalRevenue:   decimal.NewFromInt(360000),
		}, nil),
		Cities: metrics.ResultOf([]metrics.CityMetrics{
			{City: "Lahore", CustomerCount: 25, Percentage: 62.5},
			{City: "Sialkot", CustomerCount: 15, Percentage: 37.5},
		}, nil),
	}

	snap := NewSnapshot(r, 30)

	assert.Equal(t, now, snap.GeneratedAt)
	assert.Equal(t, 30, snap.WindowDays)
	assert.Equal(t, int64(120), snap.Customers.TotalOrders)
	assert.Len(t, snap.Cities, 2)
	assert.Equal(t, FrontendMockDistribution(), snap.FrontendMock)
	assert.Equal(t, FrontendIssues(), snap.FrontendIssues)
}

func TestNewSnapshotFailedSections(t *testing.T) {
	r := &metrics.Report{
		GeneratedAt: time.Now(),
		Customers:   metrics.ResultOf(metrics.CustomerMetrics{}, assert.AnError),
		Cities:      metrics.ResultOf[[]metrics.CityMetrics](nil, assert.AnError),
	}

	snap := NewSnapshot(r, 30)

	assert.Equal(t, int64(0), snap.Customers.TotalOrders)
	assert.Nil(t, snap.Cities)
	// the static frontend sections are always present
	assert.NotEmpty(t, snap.FrontendMock)
	assert.NotEmpty(t, snap.FrontendIssues)
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customer_profiling_validation.json")

	snap := NewSnapshot(&metrics.Report{
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Customers: metrics.ResultOf(metrics.CustomerMetrics{
			TotalOrders:    10,
			TotalCustomers: 4,
		}, nil),
	}, 30)

	require.NoError(t, WriteSnapshot(path, snap))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "generated_at")
	assert.Contains(t, decoded, "window_days")
	assert.Contains(t, decoded, "customer_metrics")
	assert.Contains(t, decoded, "frontend_mock")
	assert.Contains(t, decoded, "frontend_issues")
	assert.Equal(t, float64(30), decoded["window_days"])
}

func TestWriteSnapshotOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	first := NewSnapshot(&metrics.Report{GeneratedAt: time.Now()}, 30)
	require.NoError(t, WriteSnapshot(path, first))

	second := NewSnapshot(&metrics.Report{GeneratedAt: time.Now()}, 90)
	require.NoError(t, WriteSnapshot(path, second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 90, decoded.WindowDays)
}

func TestWriteSnapshotBadPath(t *testing.T) {
	snap := NewSnapshot(&metrics.Report{GeneratedAt: time.Now()}, 30)
	err := WriteSnapshot(filepath.Join(t.TempDir(), "missing", "snap.json"), snap)
	assert.Error(t, err)
}
