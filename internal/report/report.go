package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"ordersight/internal/metrics"
	"ordersight/internal/ui"
)

// Printer renders the validation report sections to stdout.
type Printer struct {
	useColor bool
}

// NewPrinter creates a report printer.
func NewPrinter(useColor bool) *Printer {
	return &Printer{useColor: useColor}
}

// PrintTableStatus renders the database structure section: row counts per
// required table, with a failure marker for tables that could not be counted.
func (p *Printer) PrintTableStatus(counts []metrics.TableCount) {
	ui.ShowSection("DATABASE STRUCTURE")

	for _, tc := range counts {
		switch {
		case tc.Rows < 0:
			fmt.Printf("   %s %s: count failed\n", ui.ColorError("✗"), tc.Table)
		case tc.Rows == 0:
			fmt.Printf("   %s %s: empty\n", ui.ColorWarning("○"), tc.Table)
		default:
			fmt.Printf("   %s %s: %s rows\n", ui.ColorSuccess("✓"), tc.Table, comma(tc.Rows))
		}
	}
}

// PrintCustomerMetrics renders the customer profiling section.
func (p *Printer) PrintCustomerMetrics(m metrics.CustomerMetrics, windowDays int) {
	ui.ShowSection(fmt.Sprintf("CUSTOMER METRICS (%d days)", windowDays))

	ui.PrintKeyValue("Total Orders", comma(m.TotalOrders))
	ui.PrintKeyValue("Total Customers", comma(m.TotalCustomers))
	ui.PrintKeyValue("Total Revenue", "PKR "+money(m.TotalRevenue))
	ui.PrintKeyValue("Avg Order Value", "PKR "+money(m.AvgOrderValue))

	fmt.Println()
	fmt.Println(ui.ColorBold("  Derived:"))
	ui.PrintKeyValue("Avg Lifetime Value", "PKR "+money(m.AvgLifetimeValue))
	ui.PrintKeyValue("Orders per Customer", fmt.Sprintf("%.1f", m.OrdersPerCustomer))
}

// PrintGeographicDistribution renders the top-10 city table. Percentages are
// relative to the top-10 customer total, so the column sums to 100.
func (p *Printer) PrintGeographicDistribution(cities []metrics.CityMetrics) {
	ui.ShowSection("TOP 10 CITIES BY CUSTOMER COUNT")

	if len(cities) == 0 {
		fmt.Println("   No cities with orders in the window.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "City", "Customers", "Share", "Orders", "Revenue (PKR)"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	var totalCustomers int64
	totalRevenue := decimal.Zero
	for i, c := range cities {
		table.Append([]string{
			strconv.Itoa(i + 1),
			c.City,
			comma(c.CustomerCount),
			fmt.Sprintf("%.1f%%", c.Percentage),
			comma(c.OrderCount),
			money(c.Revenue),
		})
		totalCustomers += c.CustomerCount
		totalRevenue = totalRevenue.Add(c.Revenue)
	}
	table.Render()

	fmt.Println()
	ui.PrintKeyValue("Total Cities", strconv.Itoa(len(cities)))
	ui.PrintKeyValue("Total Customers (top 10)", comma(totalCustomers))
	ui.PrintKeyValue("Total Revenue (top 10)", "PKR "+money(totalRevenue))
}

// PrintCollaborativeMetrics renders the collaborative-filtering section.
func (p *Printer) PrintCollaborativeMetrics(m metrics.SimilarityMetrics) {
	ui.ShowSection("COLLABORATIVE FILTERING METRICS")

	ui.PrintKeyValue("Total Users", comma(m.TotalUsers))
	ui.PrintKeyValue("Total Products", comma(m.TotalProducts))
	ui.PrintKeyValue("Total Purchases", comma(m.TotalPurchases))
	ui.PrintKeyValue("User-Product Combinations", comma(m.TotalUserProductCombinations))
	ui.PrintKeyValue("Active Customer Pairs", comma(m.ActiveCustomerPairs))
	ui.PrintKeyValue("Avg Shared Products", fmt.Sprintf("%.2f", m.AvgSharedProducts))

	fmt.Println()
	fmt.Println(ui.ColorBold("  Derived:"))
	ui.PrintKeyValue("Similarity Score", fmt.Sprintf("%.3f", m.SimilarityScore))
	ui.PrintKeyValue("Recommendation Coverage", fmt.Sprintf("%.3f", m.RecommendationCoverage))
}

// PrintHighValuePairs renders the high-value pair count and the strongest
// pairs when any qualify.
func (p *Printer) PrintHighValuePairs(pairs []metrics.ProductPair) {
	ui.ShowSection("HIGH-VALUE PRODUCT PAIRS")

	fmt.Printf("   High-value pairs (avg > %s PKR): %d\n",
		comma(metrics.HighValueThreshold), len(pairs))

	if len(pairs) == 0 {
		return
	}

	shown := pairs
	if len(shown) > 5 {
		shown = shown[:5]
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Product A", "Product B", "Avg Pair Value", "Frequency"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, pair := range shown {
		table.Append([]string{
			pair.ProductA,
			pair.ProductB,
			money(pair.AvgPairValue),
			comma(pair.PurchaseFrequency),
		})
	}
	table.Render()
	if len(pairs) > len(shown) {
		fmt.Printf("   %s\n", ui.ColorDim(fmt.Sprintf("... %d more pairs ...", len(pairs)-len(shown))))
	}
}

// PrintCrossRegionProducts renders the cross-region opportunity count and
// region breakdown.
func (p *Printer) PrintCrossRegionProducts(products []metrics.RegionalProduct) {
	ui.ShowSection("CROSS-REGION OPPORTUNITIES")

	fmt.Printf("   Cross-region products: %d\n", len(products))

	for i, product := range products {
		if i >= 5 {
			fmt.Printf("   %s\n", ui.ColorDim(fmt.Sprintf("... %d more products ...", len(products)-i)))
			break
		}
		name := product.ProductName
		if name == "" {
			name = product.ProductID
		}
		fmt.Printf("   • %s: %d regions, %s customers (%s)\n",
			name, product.RegionCount, comma(product.TotalCustomers),
			strings.Join(product.Regions, ", "))
	}
}

// PrintValidationSummary renders the per-section pass/fail summary.
func (p *Printer) PrintValidationSummary(r *metrics.Report) {
	ui.ShowSection("VALIDATION SUMMARY")

	p.printOutcome("Collaborative metrics calculation", r.Similarity.OK())
	if r.Similarity.OK() {
		m := r.Similarity.Value
		fmt.Printf("   - Total Users: %s\n", comma(m.TotalUsers))
		fmt.Printf("   - Customer Connections: %s\n", comma(m.ActiveCustomerPairs))
		fmt.Printf("   - Pattern Strength: %.1f%%\n", m.SimilarityScore*100)
		fmt.Printf("   - Recommendation Coverage: %.1f%%\n", m.RecommendationCoverage*100)
	}
	p.printOutcome(fmt.Sprintf("High-value product pairs: %d found", len(r.HighValue.OrDefault(nil))), r.HighValue.OK())
	p.printOutcome(fmt.Sprintf("Cross-region opportunities: %d found", len(r.CrossRegion.OrDefault(nil))), r.CrossRegion.OK())
}

// PrintRecommendations renders follow-up suggestions based on the thresholds
// the business reviews these reports against.
func (p *Printer) PrintRecommendations(r *metrics.Report) {
	recommendations := Recommendations(r)
	if len(recommendations) == 0 {
		return
	}

	ui.ShowSection("RECOMMENDATIONS")
	for _, rec := range recommendations {
		fmt.Printf("   • %s\n", rec)
	}
}

// Recommendations returns the follow-up suggestions for a report.
func Recommendations(r *metrics.Report) []string {
	var recs []string

	if r.Similarity.OK() && r.Similarity.Value.ActiveCustomerPairs < 100 {
		recs = append(recs, "Consider running more marketing campaigns to increase customer connections")
	}
	if r.HighValue.OK() && len(r.HighValue.Value) < 50 {
		recs = append(recs, "Focus on premium product bundles to increase high-value pairs")
	}
	if r.CrossRegion.OK() && len(r.CrossRegion.Value) < 20 {
		recs = append(recs, "Expand product distribution to more regions for cross-selling opportunities")
	}

	return recs
}

func (p *Printer) printOutcome(label string, ok bool) {
	if ok {
		if p.useColor {
			fmt.Printf("%s %s\n", color.GreenString("PASSED"), label)
		} else {
			fmt.Printf("PASSED %s\n", label)
		}
		return
	}
	if p.useColor {
		fmt.Printf("%s %s\n", color.RedString("FAILED"), label)
	} else {
		fmt.Printf("FAILED %s\n", label)
	}
}

// money formats a decimal amount with no fraction digits and thousands
// separators, matching the dashboard's currency display.
func money(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	grouped := group(s)
	if neg {
		return "-" + grouped
	}
	return grouped
}

// comma formats an integer with thousands separators.
func comma(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return "-" + group(s[1:])
	}
	return group(s)
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
