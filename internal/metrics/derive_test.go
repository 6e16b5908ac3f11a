package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAvgLifetimeValue(t *testing.T) {
	tests := []struct {
		name           string
		totalRevenue   string
		totalCustomers int64
		expected       string
	}{
		{
			name:           "revenue spread over customers",
			totalRevenue:   "600",
			totalCustomers: 2,
			expected:       "300",
		},
		{
			name:           "zero customers returns zero",
			totalRevenue:   "600",
			totalCustomers: 0,
			expected:       "0",
		},
		{
			name:           "no revenue",
			totalRevenue:   "0",
			totalCustomers: 5,
			expected:       "0",
		},
		{
			name:           "fractional result",
			totalRevenue:   "100",
			totalCustomers: 3,
			expected:       "33.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revenue := decimal.RequireFromString(tt.totalRevenue)
			got := AvgLifetimeValue(revenue, tt.totalCustomers)
			expected := decimal.RequireFromString(tt.expected)
			assert.True(t, got.Round(2).Equal(expected),
				"expected %s, got %s", expected, got)
		})
	}
}

func TestOrdersPerCustomer(t *testing.T) {
	assert.Equal(t, 1.5, OrdersPerCustomer(3, 2))
	assert.Equal(t, 0.0, OrdersPerCustomer(3, 0))
	assert.Equal(t, 0.0, OrdersPerCustomer(0, 0))
}

func TestApplyCityPercentages(t *testing.T) {
	cities := []CityMetrics{
		{City: "Lahore", CustomerCount: 50},
		{City: "Karachi", CustomerCount: 30},
		{City: "Rawalpindi", CustomerCount: 20},
	}

	ApplyCityPercentages(cities)

	assert.Equal(t, 50.0, cities[0].Percentage)
	assert.Equal(t, 30.0, cities[1].Percentage)
	assert.Equal(t, 20.0, cities[2].Percentage)

	// The denominator is the returned set's own total, so shares always sum to 100
	var sum float64
	for _, c := range cities {
		sum += c.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestApplyCityPercentagesSumsTo100(t *testing.T) {
	cities := []CityMetrics{
		{City: "a", CustomerCount: 7},
		{City: "b", CustomerCount: 13},
		{City: "c", CustomerCount: 3},
		{City: "d", CustomerCount: 29},
		{City: "e", CustomerCount: 1},
	}

	ApplyCityPercentages(cities)

	var sum float64
	for _, c := range cities {
		sum += c.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestApplyCityPercentagesEmptyAndZero(t *testing.T) {
	// No cities: nothing to do
	ApplyCityPercentages(nil)

	// All-zero counts must not divide by zero
	cities := []CityMetrics{{City: "a"}, {City: "b"}}
	ApplyCityPercentages(cities)
	assert.Equal(t, 0.0, cities[0].Percentage)
	assert.Equal(t, 0.0, cities[1].Percentage)
}

func TestSimilarityScore(t *testing.T) {
	tests := []struct {
		name     string
		avg      float64
		expected float64
	}{
		{"zero shared products", 0, 0},
		{"negative input floors at zero", -1, 0},
		{"two shared products", 2.0, 0.2},
		{"saturates at ten", 10, 1.0},
		{"clamped above ten", 25, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarityScore(tt.avg)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestMaxPossiblePairs(t *testing.T) {
	tests := []struct {
		name     string
		users    int64
		expected float64
	}{
		{"no users gets sentinel", 0, 1},
		{"single user gets sentinel", 1, 1},
		{"two users", 2, 1},
		{"three users", 3, 3},
		{"ten users", 10, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxPossiblePairs(tt.users)
			assert.Equal(t, tt.expected, got)
			assert.Greater(t, got, 0.0, "must never be zero or negative")
		})
	}
}

func TestRecommendationCoverage(t *testing.T) {
	tests := []struct {
		name     string
		active   int64
		maxPairs float64
		expected float64
	}{
		{"no active pairs", 0, 45, 0},
		{"partial coverage", 9, 45, 0.2},
		{"full coverage", 45, 45, 1.0},
		{"clamped above one", 50, 45, 1.0},
		{"zero denominator guarded", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendationCoverage(tt.active, tt.maxPairs)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestResultOrDefault(t *testing.T) {
	ok := ResultOf(int64(7), nil)
	assert.True(t, ok.OK())
	assert.Equal(t, int64(7), ok.OrDefault(0))

	failed := ResultOf(int64(7), assert.AnError)
	assert.False(t, failed.OK())
	assert.Equal(t, int64(0), failed.OrDefault(0))
}
