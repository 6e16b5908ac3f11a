package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ordersight/internal/metrics"
	"ordersight/internal/report"
	"ordersight/internal/ui"
	"ordersight/pkg/models"
)

var (
	profilingWindow int
	snapshotPath    string
	noSave          bool
)

var profilingCmd = &cobra.Command{
	Use:   "profiling",
	Short: "Validate customer profiling and geographic distribution",
	Long: `Validate the customer profiling and geographic distribution sections of the
dashboard: compute the customer metrics and top-10 city breakdown from the
database, compare them with the frontend's hard-coded display, and write a
JSON snapshot of the results.`,
	RunE: runProfiling,
}

func init() {
	rootCmd.AddCommand(profilingCmd)

	profilingCmd.Flags().IntVar(&profilingWindow, "window", 0, "Lookback window in days (default from config, 30)")
	profilingCmd.Flags().StringVarP(&snapshotPath, "output", "o", "", "Snapshot file path (default from config)")
	profilingCmd.Flags().BoolVar(&noSave, "no-save", false, "Skip writing the JSON snapshot")
}

func runProfiling(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if profilingWindow > 0 {
		cfg.Windows.Customer = profilingWindow
	}

	ui.ShowHeader("CUSTOMER PROFILING & GEOGRAPHIC DISTRIBUTION VALIDATION")

	out := ui.NewUI(verbose, false)
	out.VerbosePrintf("   Target: %s@%s:%d/%s (sslmode=%s)\n",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, cfg.Database.SSLMode)
	out.VerbosePrintf("   Window: %d days\n", cfg.Windows.Customer)

	service, err := connect(cfg)
	if err != nil {
		return err
	}
	defer service.Close()

	return profilingReport(service.GetDB(), cfg, out)
}

// profilingReport runs the profiling sections over an open handle. Each
// metric group is isolated: a failure degrades that section to its defaults
// and the run continues.
func profilingReport(db *sql.DB, cfg *models.Config, out *ui.UI) error {
	ctx := context.Background()
	computer := metrics.NewComputer(db, windowsFromConfig(cfg))
	printer := report.NewPrinter(useColor(cfg))

	rep := &metrics.Report{GeneratedAt: time.Now()}

	rep.Customers = metrics.ResultOf(computer.CustomerMetrics(ctx))
	if rep.Customers.OK() {
		printer.PrintCustomerMetrics(rep.Customers.Value, computer.Windows().Customer)
	} else {
		out.Warning(fmt.Sprintf("customer metrics unavailable: %v", rep.Customers.Err))
		printer.PrintCustomerMetrics(metrics.CustomerMetrics{}, computer.Windows().Customer)
	}

	rep.Cities = metrics.ResultOf(computer.GeographicDistribution(ctx))
	if rep.Cities.OK() {
		printer.PrintGeographicDistribution(rep.Cities.Value)
	} else {
		out.Warning(fmt.Sprintf("geographic distribution unavailable: %v", rep.Cities.Err))
	}

	printer.PrintFrontendComparison(rep.Cities.OrDefault(nil))

	ui.ShowSection("RECOMMENDATIONS")
	for i, rec := range report.ProfilingRecommendations() {
		out.Printf("   %d. %s\n", i+1, rec)
	}

	if !noSave {
		path := snapshotPath
		if path == "" {
			path = cfg.Report.SnapshotFile
		}
		snap := report.NewSnapshot(rep, computer.Windows().Customer)
		if err := report.WriteSnapshot(path, snap); err != nil {
			out.Warning(fmt.Sprintf("failed to save snapshot: %v", err))
		} else {
			out.Printf("\n")
			out.Info("Results saved to: " + path)
		}
	}

	out.Printf("\n")
	out.Success("Validation complete")
	return nil
}
