package cmd

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersight/internal/metrics"
	"ordersight/internal/ui"
	"ordersight/pkg/models"
)

func expectTableCounts(mock sqlmock.Sqlmock, rows int64) {
	for _, table := range metrics.RequiredTables {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM " + table).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(rows))
	}
}

func TestMetricsReportContinuesOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// every count and every section fails; the run must still complete
	for range metrics.RequiredTables {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
			WillReturnError(fmt.Errorf("does not exist"))
	}
	mock.ExpectQuery("WITH customer_products AS").WithArgs(30).
		WillReturnError(fmt.Errorf(`relation "order_items" does not exist`))
	mock.ExpectQuery("WITH order_pairs AS").WithArgs(90, metrics.HighValueThreshold).
		WillReturnError(fmt.Errorf(`relation "order_items" does not exist`))
	mock.ExpectQuery("WITH regional_popularity AS").WithArgs(180, 10, 3, 50).
		WillReturnError(fmt.Errorf(`relation "order_items" does not exist`))

	cfg := models.DefaultConfig()
	err = metricsReport(db, cfg, ui.NewUI(false, true))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetricsReportHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectTableCounts(mock, 1000)
	mock.ExpectQuery("WITH customer_products AS").WithArgs(30).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_users", "total_products", "total_purchases",
			"total_user_product_combinations", "active_customer_pairs", "avg_shared_products",
		}).AddRow(2, 2, 4, 4, 1, 2.0))
	mock.ExpectQuery("WITH order_pairs AS").WithArgs(90, metrics.HighValueThreshold).
		WillReturnRows(sqlmock.NewRows([]string{"product_a", "product_b", "avg_pair_value", "purchase_frequency"}).
			AddRow("P-100", "P-200", "7500", 12))
	mock.ExpectQuery("WITH regional_popularity AS").WithArgs(180, 10, 3, 50).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "region_count", "total_customers", "regions"}).
			AddRow("P-700", "Premium Tea", 4, 180, "Lahore, Karachi, Sialkot, Multan"))

	cfg := models.DefaultConfig()
	err = metricsReport(db, cfg, ui.NewUI(false, true))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetricsReportPartialFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// a single failing section degrades; the others still run
	expectTableCounts(mock, 1000)
	mock.ExpectQuery("WITH customer_products AS").WithArgs(30).
		WillReturnError(fmt.Errorf("canceling statement due to statement timeout"))
	mock.ExpectQuery("WITH order_pairs AS").WithArgs(90, metrics.HighValueThreshold).
		WillReturnRows(sqlmock.NewRows([]string{"product_a", "product_b", "avg_pair_value", "purchase_frequency"}))
	mock.ExpectQuery("WITH regional_popularity AS").WithArgs(180, 10, 3, 50).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "region_count", "total_customers", "regions"}))

	cfg := models.DefaultConfig()
	err = metricsReport(db, cfg, ui.NewUI(false, true))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
