package metrics

import "github.com/shopspring/decimal"

// Derived-metric formulas. These are pure: every division is guarded so a
// window with no data resolves to 0 (or the documented sentinel) instead of
// failing.

// AvgLifetimeValue is total revenue spread over distinct customers.
// Returns 0 when there are no customers.
func AvgLifetimeValue(totalRevenue decimal.Decimal, totalCustomers int64) decimal.Decimal {
	if totalCustomers <= 0 {
		return decimal.Zero
	}
	return totalRevenue.Div(decimal.NewFromInt(totalCustomers))
}

// OrdersPerCustomer is the mean order count per distinct customer.
// Returns 0 when there are no customers.
func OrdersPerCustomer(totalOrders, totalCustomers int64) float64 {
	if totalCustomers <= 0 {
		return 0
	}
	return float64(totalOrders) / float64(totalCustomers)
}

// ApplyCityPercentages fills in each city's share of the customer total.
// The denominator is the customer sum over the returned set itself (the
// top-10 slice), not the full population; the dashboard has always computed
// it this way and the validation must match it.
func ApplyCityPercentages(cities []CityMetrics) {
	var total int64
	for _, c := range cities {
		total += c.CustomerCount
	}
	if total <= 0 {
		return
	}
	for i := range cities {
		cities[i].Percentage = float64(cities[i].CustomerCount) / float64(total) * 100
	}
}

// SimilarityScore maps the mean shared-product count onto [0, 1], saturating
// at 10 shared products.
func SimilarityScore(avgSharedProducts float64) float64 {
	if avgSharedProducts <= 0 {
		return 0
	}
	score := avgSharedProducts / 10.0
	if score > 1.0 {
		return 1.0
	}
	return score
}

// MaxPossiblePairs is n*(n-1)/2 for n users. For fewer than two users there
// are no pairs; 1 is returned as a sentinel so coverage never divides by zero.
func MaxPossiblePairs(totalUsers int64) float64 {
	if totalUsers <= 1 {
		return 1
	}
	return float64(totalUsers*(totalUsers-1)) / 2
}

// RecommendationCoverage is the fraction of possible customer pairs that are
// active, clamped to [0, 1].
func RecommendationCoverage(activePairs int64, maxPossiblePairs float64) float64 {
	if maxPossiblePairs <= 0 {
		return 0
	}
	coverage := float64(activePairs) / maxPossiblePairs
	if coverage > 1.0 {
		return 1.0
	}
	return coverage
}
