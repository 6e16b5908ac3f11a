package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ordersight/internal/common"
	"ordersight/internal/metrics"
)

// Snapshot is the JSON artifact the profiling command writes. It is a flat
// dump of one run's results: no schema version, overwritten on every run.
type Snapshot struct {
	GeneratedAt    time.Time               `json:"generated_at"`
	WindowDays     int                     `json:"window_days"`
	Customers      metrics.CustomerMetrics `json:"customer_metrics"`
	Cities         []metrics.CityMetrics   `json:"cities"`
	FrontendMock   []FrontendCity          `json:"frontend_mock"`
	FrontendIssues []string                `json:"frontend_issues"`
}

// NewSnapshot assembles a snapshot from a report. Failed sections contribute
// their zero values; the snapshot mirrors exactly what was printed.
func NewSnapshot(r *metrics.Report, windowDays int) Snapshot {
	return Snapshot{
		GeneratedAt:    r.GeneratedAt,
		WindowDays:     windowDays,
		Customers:      r.Customers.OrDefault(metrics.CustomerMetrics{}),
		Cities:         r.Cities.OrDefault(nil),
		FrontendMock:   FrontendMockDistribution(),
		FrontendIssues: FrontendIssues(),
	}
}

// WriteSnapshot writes the snapshot to path, replacing any previous run's file.
func WriteSnapshot(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, common.FilePermissionNormal); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
