package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerMetrics aggregates orders over the customer window, plus the
// derived per-customer ratios.
type CustomerMetrics struct {
	TotalOrders       int64           `json:"total_orders"`
	TotalCustomers    int64           `json:"total_customers"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AvgOrderValue     decimal.Decimal `json:"avg_order_value"`
	AvgLifetimeValue  decimal.Decimal `json:"avg_lifetime_value"`
	OrdersPerCustomer float64         `json:"orders_per_customer"`
}

// CityMetrics is one row of the geographic distribution. Percentage is
// relative to the customer total of the returned top-10 set, not the full
// population. That matches what the dashboard has always shown.
type CityMetrics struct {
	City          string          `json:"city"`
	CustomerCount int64           `json:"customer_count"`
	OrderCount    int64           `json:"order_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	Percentage    float64         `json:"percentage"`
}

// SimilarityMetrics holds the collaborative-filtering aggregates and their
// derived scores.
type SimilarityMetrics struct {
	TotalUsers                   int64   `json:"total_users"`
	TotalProducts                int64   `json:"total_products"`
	TotalPurchases               int64   `json:"total_purchases"`
	TotalUserProductCombinations int64   `json:"total_user_product_combinations"`
	ActiveCustomerPairs          int64   `json:"active_customer_pairs"`
	AvgSharedProducts            float64 `json:"avg_shared_products"`
	SimilarityScore              float64 `json:"similarity_score"`
	MaxPossiblePairs             float64 `json:"max_possible_pairs"`
	RecommendationCoverage       float64 `json:"recommendation_coverage"`
}

// ProductPair is an unordered pair of products that co-occur in orders,
// with ProductA < ProductB by identifier.
type ProductPair struct {
	ProductA          string          `json:"product_a"`
	ProductB          string          `json:"product_b"`
	AvgPairValue      decimal.Decimal `json:"avg_pair_value"`
	PurchaseFrequency int64           `json:"purchase_frequency"`
}

// RegionalProduct is a product popular in several regions.
type RegionalProduct struct {
	ProductID      string   `json:"product_id"`
	ProductName    string   `json:"product_name,omitempty"`
	RegionCount    int64    `json:"region_count"`
	TotalCustomers int64    `json:"total_customers"`
	Regions        []string `json:"regions"`
}

// TableCount reports the row count of one required table. Rows is -1 when
// the count query failed.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// Result carries the outcome of one metric computation: a value or the
// reason it could not be computed. The caller decides which default to
// substitute on failure.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the computation succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// OrDefault returns the computed value, or def when the computation failed.
func (r Result[T]) OrDefault(def T) T {
	if r.Err != nil {
		return def
	}
	return r.Value
}

// ResultOf wraps a (value, error) return into a Result.
func ResultOf[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Err: err}
}

// Report aggregates every metric computation of a single run. Individual
// sections may have failed without invalidating the rest; only Tables is
// always present (failed counts show as -1).
type Report struct {
	GeneratedAt time.Time
	Tables      []TableCount
	Customers   Result[CustomerMetrics]
	Cities      Result[[]CityMetrics]
	Similarity  Result[SimilarityMetrics]
	HighValue   Result[[]ProductPair]
	CrossRegion Result[[]RegionalProduct]
}
