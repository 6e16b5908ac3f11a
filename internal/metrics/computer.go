package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ordersight/pkg/errors"
)

// Qualification thresholds, in currency units / distinct customers. These
// match what the dashboard API uses.
const (
	// HighValueThreshold is the mean combined pair price above which a
	// product pair counts as high-value.
	HighValueThreshold = 5000

	minRegionalCustomers = 10
	minRegions           = 3
	minTotalCustomers    = 50
)

// RequiredTables are the tables the analytics schema must expose.
var RequiredTables = []string{
	"orders",
	"order_items",
	"customer_purchases",
	"product_pairs",
	"product_statistics",
	"customer_statistics",
}

// Windows holds the trailing lookback periods, in days, for each metric group.
type Windows struct {
	Customer    int
	Similarity  int
	HighValue   int
	CrossRegion int
}

// DefaultWindows returns the conventional 30/30/90/180 day windows.
func DefaultWindows() Windows {
	return Windows{
		Customer:    30,
		Similarity:  30,
		HighValue:   90,
		CrossRegion: 180,
	}
}

// Computer runs the analytic queries and derives the secondary metrics.
// It is a read-only consumer of the schema: every operation is an idempotent
// read-and-compute over a snapshot of the store.
type Computer struct {
	db      *sql.DB
	windows Windows
}

// NewComputer creates a Computer over an open database handle. Zero window
// values fall back to the defaults.
func NewComputer(db *sql.DB, windows Windows) *Computer {
	defaults := DefaultWindows()
	if windows.Customer <= 0 {
		windows.Customer = defaults.Customer
	}
	if windows.Similarity <= 0 {
		windows.Similarity = defaults.Similarity
	}
	if windows.HighValue <= 0 {
		windows.HighValue = defaults.HighValue
	}
	if windows.CrossRegion <= 0 {
		windows.CrossRegion = defaults.CrossRegion
	}
	return &Computer{db: db, windows: windows}
}

// Windows returns the configured lookback periods.
func (c *Computer) Windows() Windows {
	return c.windows
}

// CustomerMetrics computes the raw customer aggregates over the customer
// window and fills in the derived per-customer ratios.
func (c *Computer) CustomerMetrics(ctx context.Context) (CustomerMetrics, error) {
	var m CustomerMetrics
	row := c.db.QueryRowContext(ctx, queryCustomerMetrics, c.windows.Customer)
	if err := row.Scan(&m.TotalOrders, &m.TotalCustomers, &m.TotalRevenue, &m.AvgOrderValue); err != nil {
		return CustomerMetrics{}, errors.SQLError("Failed to compute customer metrics", queryCustomerMetrics, err)
	}

	m.AvgLifetimeValue = AvgLifetimeValue(m.TotalRevenue, m.TotalCustomers)
	m.OrdersPerCustomer = OrdersPerCustomer(m.TotalOrders, m.TotalCustomers)
	return m, nil
}

// GeographicDistribution returns the top 10 cities by distinct customer
// count, with each city's percentage share of that top-10 set.
func (c *Computer) GeographicDistribution(ctx context.Context) ([]CityMetrics, error) {
	rows, err := c.db.QueryContext(ctx, queryGeographicDistribution, c.windows.Customer)
	if err != nil {
		return nil, errors.SQLError("Failed to compute geographic distribution", queryGeographicDistribution, err)
	}
	defer rows.Close()

	var cities []CityMetrics
	for rows.Next() {
		var city CityMetrics
		if err := rows.Scan(&city.City, &city.CustomerCount, &city.OrderCount, &city.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("city rows iteration failed: %w", err)
	}

	ApplyCityPercentages(cities)
	return cities, nil
}

// CollaborativeMetrics computes the collaborative-filtering aggregates over
// the similarity window and derives the similarity score and recommendation
// coverage from them.
func (c *Computer) CollaborativeMetrics(ctx context.Context) (SimilarityMetrics, error) {
	var m SimilarityMetrics
	row := c.db.QueryRowContext(ctx, queryCollaborativeMetrics, c.windows.Similarity)
	err := row.Scan(
		&m.TotalUsers,
		&m.TotalProducts,
		&m.TotalPurchases,
		&m.TotalUserProductCombinations,
		&m.ActiveCustomerPairs,
		&m.AvgSharedProducts,
	)
	if err != nil {
		return SimilarityMetrics{}, errors.SQLError("Failed to compute collaborative metrics", queryCollaborativeMetrics, err)
	}

	m.SimilarityScore = SimilarityScore(m.AvgSharedProducts)
	m.MaxPossiblePairs = MaxPossiblePairs(m.TotalUsers)
	m.RecommendationCoverage = RecommendationCoverage(m.ActiveCustomerPairs, m.MaxPossiblePairs)
	return m, nil
}

// HighValuePairs returns the product pairs whose mean combined price over
// the high-value window exceeds HighValueThreshold, best first.
func (c *Computer) HighValuePairs(ctx context.Context) ([]ProductPair, error) {
	rows, err := c.db.QueryContext(ctx, queryHighValuePairs, c.windows.HighValue, HighValueThreshold)
	if err != nil {
		return nil, errors.SQLError("Failed to compute high-value product pairs", queryHighValuePairs, err)
	}
	defer rows.Close()

	var pairs []ProductPair
	for rows.Next() {
		var pair ProductPair
		if err := rows.Scan(&pair.ProductA, &pair.ProductB, &pair.AvgPairValue, &pair.PurchaseFrequency); err != nil {
			return nil, fmt.Errorf("failed to scan product pair row: %w", err)
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product pair rows iteration failed: %w", err)
	}

	return pairs, nil
}

// CrossRegionProducts returns products popular in at least three regions
// over the cross-region window, with their region lists.
func (c *Computer) CrossRegionProducts(ctx context.Context) ([]RegionalProduct, error) {
	rows, err := c.db.QueryContext(ctx, queryCrossRegionProducts,
		c.windows.CrossRegion, minRegionalCustomers, minRegions, minTotalCustomers)
	if err != nil {
		return nil, errors.SQLError("Failed to compute cross-region products", queryCrossRegionProducts, err)
	}
	defer rows.Close()

	var products []RegionalProduct
	for rows.Next() {
		var product RegionalProduct
		var name sql.NullString
		var regions string
		if err := rows.Scan(&product.ProductID, &name, &product.RegionCount, &product.TotalCustomers, &regions); err != nil {
			return nil, fmt.Errorf("failed to scan regional product row: %w", err)
		}
		product.ProductName = name.String
		if regions != "" {
			product.Regions = strings.Split(regions, ", ")
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("regional product rows iteration failed: %w", err)
	}

	return products, nil
}

// TableCounts reports the row count of every required table. A failing count
// is recorded as -1 for that table; it never aborts the run.
func (c *Computer) TableCounts(ctx context.Context) []TableCount {
	counts := make([]TableCount, 0, len(RequiredTables))
	for _, table := range RequiredTables {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table) // #nosec G201 - RequiredTables is hard-coded
		var count int64
		if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			count = -1
		}
		counts = append(counts, TableCount{Table: table, Rows: count})
	}
	return counts
}
