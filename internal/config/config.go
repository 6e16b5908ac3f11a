package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"ordersight/internal/common"
	"ordersight/pkg/models"
)

const keyringService = "ordersight"

func GetConfigPath() string {
	// Check for environment variable first
	if configPath := os.Getenv("ORDERSIGHT_CONFIG"); configPath != "" {
		return filepath.Dir(configPath)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ordersight")
}

func GetConfigFile() string {
	// Check for environment variable first
	if configFile := os.Getenv("ORDERSIGHT_CONFIG"); configFile != "" {
		// Validate the path to prevent directory traversal
		cleaned, err := common.CleanPath(configFile)
		if err != nil {
			// Fall back to default if invalid
			return filepath.Join(GetConfigPath(), "config.yaml")
		}
		return cleaned
	}
	return filepath.Join(GetConfigPath(), "config.yaml")
}

// Load reads the config file, falling back to documented defaults when it is
// missing, then applies PG_* environment overrides and resolves the keyring
// password if configured.
func Load() (*models.Config, error) {
	config, err := LoadFile()
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(config)

	if config.Database.UseKeyring && config.Database.Password == "" {
		password, err := GetStoredPassword(config.Database.User)
		if err == nil {
			config.Database.Password = password
		}
	}

	return config, nil
}

// LoadFile reads the config file over the defaults without environment
// overrides or keyring resolution. Anything that edits and re-saves the file
// must start from this raw form, so resolved secrets never get written back.
func LoadFile() (*models.Config, error) {
	config := models.DefaultConfig()

	configFile := GetConfigFile()
	cleanedPath, err := common.CleanPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("invalid config file path: %w", err)
	}

	if _, err := os.Stat(cleanedPath); err == nil {
		data, err := os.ReadFile(cleanedPath) // #nosec G304 - path is validated
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	return config, nil
}

func Save(config *models.Config) error {
	configPath := GetConfigPath()
	if err := os.MkdirAll(configPath, common.DirPermissionSecure); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := GetConfigFile()

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, common.FilePermissionSecure); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func Exists() bool {
	_, err := os.Stat(GetConfigFile())
	return err == nil
}

// StorePassword saves the database password in the OS keyring, keyed by user.
func StorePassword(user, password string) error {
	if err := keyring.Set(keyringService, user, password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	return nil
}

// GetStoredPassword retrieves the database password from the OS keyring.
func GetStoredPassword(user string) (string, error) {
	password, err := keyring.Get(keyringService, user)
	if err != nil {
		return "", fmt.Errorf("failed to get password from keyring: %w", err)
	}
	return password, nil
}

// applyEnvOverrides layers the PG_* environment variables (the convention the
// validation reports have always used) over the file-based configuration.
func applyEnvOverrides(config *models.Config) {
	if host := os.Getenv("PG_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("PG_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Database.Port = p
		}
	}
	if name := os.Getenv("PG_DATABASE"); name != "" {
		config.Database.Name = name
	}
	if user := os.Getenv("PG_USER"); user != "" {
		config.Database.User = user
	}
	if password := os.Getenv("PG_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if sslmode := os.Getenv("PG_SSLMODE"); sslmode != "" {
		config.Database.SSLMode = sslmode
	}
}
