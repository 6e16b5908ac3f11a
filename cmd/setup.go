package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ordersight/internal/config"
	"ordersight/internal/postgres"
	"ordersight/internal/ui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the database connection interactively",
	Long: `Walk through the database connection settings and write them to the config
file. The password can be stored in the OS keyring instead of the file.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	ui.ShowLogo()

	// Edit the raw file contents only. Load() would resolve the keyring
	// password and PG_* overrides into the struct, and saving that would
	// persist secrets in plaintext.
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("failed to load existing configuration: %w", err)
	}

	host, err := ui.Input("PostgreSQL host:", cfg.Database.Host, "Hostname or IP of the database server")
	if err != nil {
		return err
	}
	cfg.Database.Host = host

	portStr, err := ui.Input("Port:", strconv.Itoa(cfg.Database.Port), "")
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return fmt.Errorf("invalid port %q", portStr)
	}
	cfg.Database.Port = port

	name, err := ui.Input("Database name:", cfg.Database.Name, "")
	if err != nil {
		return err
	}
	cfg.Database.Name = name

	user, err := ui.Input("User:", cfg.Database.User, "")
	if err != nil {
		return err
	}
	cfg.Database.User = user

	password, err := ui.Password("Password:", "Leave empty to keep using PG_PASSWORD")
	if err != nil {
		return err
	}

	sslmode, err := ui.Select("SSL mode:", []string{"prefer", "require", "verify-full", "disable"})
	if err != nil {
		return err
	}
	cfg.Database.SSLMode = sslmode

	if password != "" {
		useKeyring, err := ui.Confirm("Store the password in the OS keyring instead of the config file?", true)
		if err != nil {
			return err
		}
		if useKeyring {
			if err := config.StorePassword(cfg.Database.User, password); err != nil {
				ui.ShowWarning(fmt.Sprintf("keyring unavailable, storing in config file: %v", err))
				cfg.Database.Password = password
				cfg.Database.UseKeyring = false
			} else {
				cfg.Database.Password = ""
				cfg.Database.UseKeyring = true
			}
		} else {
			cfg.Database.Password = password
			cfg.Database.UseKeyring = false
		}
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	ui.ShowSuccess("Configuration saved to " + config.GetConfigFile())

	testNow, err := ui.Confirm("Test the connection now?", true)
	if err != nil {
		return err
	}
	if testNow {
		// Re-load so keyring resolution takes the same path as a normal run
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		service := postgres.NewService(pgConfigFrom(loaded))
		if err := service.TestConnection(); err != nil {
			ui.ShowError(err)
			return nil
		}
		defer service.Close()
		ui.ShowSuccess("Connection OK")
	}

	return nil
}
