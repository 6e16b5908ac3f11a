package models

type Config struct {
	Database Database `yaml:"database"`
	Windows  Windows  `yaml:"windows"`
	Report   Report   `yaml:"report"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	// UseKeyring resolves the password from the OS keyring instead of this file
	UseKeyring bool `yaml:"use_keyring"`
}

// Windows holds the trailing lookback periods, in days, applied to the
// order date filter of each metric group.
type Windows struct {
	Customer    int `yaml:"customer"`     // customer metrics and geographic distribution
	Similarity  int `yaml:"similarity"`   // collaborative filtering metrics
	HighValue   int `yaml:"high_value"`   // high-value product pairs
	CrossRegion int `yaml:"cross_region"` // cross-region products
}

type Report struct {
	SnapshotFile string `yaml:"snapshot_file"` // JSON snapshot path for the profiling command
	NoColor      bool   `yaml:"no_color"`
}

// DefaultConfig returns a config populated with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: Database{
			Host:    "localhost",
			Port:    5432,
			Name:    "mastergroup_recommendations",
			User:    "postgres",
			SSLMode: "prefer",
		},
		Windows: Windows{
			Customer:    30,
			Similarity:  30,
			HighValue:   90,
			CrossRegion: 180,
		},
		Report: Report{
			SnapshotFile: "customer_profiling_validation.json",
		},
	}
}
