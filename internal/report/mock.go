package report

import (
	"fmt"

	"ordersight/internal/metrics"
	"ordersight/internal/ui"
)

// FrontendCity is one entry of the distribution currently hard-coded in the
// dashboard frontend.
type FrontendCity struct {
	City       string  `json:"city"`
	Percentage float64 `json:"percentage"`
}

// FrontendMockDistribution returns the geographic distribution the frontend
// displays today. It is static mock data, which is exactly what this report
// exists to call out.
func FrontendMockDistribution() []FrontendCity {
	return []FrontendCity{
		{City: "Karachi", Percentage: 35},
		{City: "Lahore", Percentage: 25},
		{City: "Islamabad", Percentage: 15},
		{City: "Peshawar", Percentage: 10},
		{City: "Others", Percentage: 15},
	}
}

// FrontendIssues lists the known discrepancies between the frontend display
// and the database.
func FrontendIssues() []string {
	return []string{
		"Uses mock geographic distribution instead of real data",
		"Shows incorrect city rankings",
		"Uses fixed percentages instead of real calculations",
		"Missing actual top cities like Sialkot, Jhang City",
	}
}

// ProfilingRecommendations lists the follow-ups for the frontend team. They
// are static: the report's job is to restate them until the mock data is gone.
func ProfilingRecommendations() []string {
	return []string{
		"Update frontend to use real geographic data from database",
		"Replace mock percentages with actual customer distribution",
		"Add API endpoint for geographic distribution metrics",
		"Update city rankings to reflect real customer data",
		"Add revenue data per city for business insights",
	}
}

// PrintFrontendComparison renders the mock distribution next to the real one
// and flags the differences.
func (p *Printer) PrintFrontendComparison(cities []metrics.CityMetrics) {
	ui.ShowSection("COMPARING REAL DATA WITH FRONTEND DISPLAY")

	fmt.Println(ui.ColorBold("  Frontend mock distribution:"))
	for _, city := range FrontendMockDistribution() {
		fmt.Printf("   %-12s %3.0f%%  %s\n", city.City, city.Percentage, ui.ColorDim("(MOCK DATA)"))
	}

	fmt.Println()
	fmt.Println(ui.ColorBold("  Real database distribution:"))
	shown := cities
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, city := range shown {
		fmt.Printf("   %d. %-12s %4.1f%%  %s\n", i+1, city.City, city.Percentage,
			ui.ColorDim(fmt.Sprintf("(%d customers - REAL DATA)", city.CustomerCount)))
	}

	fmt.Println()
	fmt.Println(ui.ColorBold("  Known frontend issues:"))
	for _, issue := range FrontendIssues() {
		fmt.Printf("   %s %s\n", ui.ColorError("✗"), issue)
	}
}
