package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ordersight/internal/config"
	"ordersight/internal/metrics"
	"ordersight/internal/postgres"
	"ordersight/internal/ui"
	"ordersight/pkg/models"
)

var (
	noColor bool
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "ordersight",
		Short: "Validate order analytics against the database",
		Long: "ordersight - validation reports for the order analytics dashboard.\n" +
			"Runs the dashboard's aggregation queries directly against PostgreSQL,\n" +
			"derives the business metrics, and flags where the frontend display diverges.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColor()
			}
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("host", "", "Database host (overrides config)")
	rootCmd.PersistentFlags().Int("port", 0, "Database port (overrides config)")
	rootCmd.PersistentFlags().String("database", "", "Database name (overrides config)")
	rootCmd.PersistentFlags().String("user", "", "Database user (overrides config)")
	rootCmd.PersistentFlags().String("sslmode", "", "SSL mode (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	bindConnectionFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	viper.SetEnvPrefix("ORDERSIGHT")
	viper.AutomaticEnv()
}

// bindConnectionFlags maps connection flags into viper so flag and
// ORDERSIGHT_* environment overrides resolve through one lookup path.
func bindConnectionFlags(fs *pflag.FlagSet) {
	_ = viper.BindPFlag("host", fs.Lookup("host"))
	_ = viper.BindPFlag("port", fs.Lookup("port"))
	_ = viper.BindPFlag("database", fs.Lookup("database"))
	_ = viper.BindPFlag("user", fs.Lookup("user"))
	_ = viper.BindPFlag("sslmode", fs.Lookup("sslmode"))
}

// loadConfig reads the config file and layers flag/env overrides on top.
func loadConfig() (*models.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if host := viper.GetString("host"); host != "" {
		cfg.Database.Host = host
	}
	if port := viper.GetInt("port"); port > 0 {
		cfg.Database.Port = port
	}
	if name := viper.GetString("database"); name != "" {
		cfg.Database.Name = name
	}
	if user := viper.GetString("user"); user != "" {
		cfg.Database.User = user
	}
	if sslmode := viper.GetString("sslmode"); sslmode != "" {
		cfg.Database.SSLMode = sslmode
	}

	if cfg.Report.NoColor {
		ui.DisableColor()
	}

	return cfg, nil
}

// useColor reports whether report output should be colored: both the
// --no-color flag and the config file can turn it off.
func useColor(cfg *models.Config) bool {
	return !noColor && !cfg.Report.NoColor
}

// pgConfigFrom maps the resolved configuration onto connection settings.
func pgConfigFrom(cfg *models.Config) postgres.Config {
	return postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		Timeout:  30 * time.Second,
	}
}

// connect opens the single database connection used for the whole run.
// A connection failure is fatal; per-metric failures are not.
func connect(cfg *models.Config) (*postgres.Service, error) {
	pgConfig := pgConfigFrom(cfg)

	if err := postgres.ValidateConfig(pgConfig); err != nil {
		return nil, err
	}

	service := postgres.NewService(pgConfig)
	if err := service.Connect(); err != nil {
		return nil, err
	}
	return service, nil
}

func windowsFromConfig(cfg *models.Config) metrics.Windows {
	return metrics.Windows{
		Customer:    cfg.Windows.Customer,
		Similarity:  cfg.Windows.Similarity,
		HighValue:   cfg.Windows.HighValue,
		CrossRegion: cfg.Windows.CrossRegion,
	}
}
