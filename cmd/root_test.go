package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ordersight/pkg/models"
)

func TestUseColor(t *testing.T) {
	prev := noColor
	defer func() { noColor = prev }()

	cfg := models.DefaultConfig()

	noColor = false
	assert.True(t, useColor(cfg))

	cfg.Report.NoColor = true
	assert.False(t, useColor(cfg))

	cfg.Report.NoColor = false
	noColor = true
	assert.False(t, useColor(cfg))
}

func TestPgConfigFrom(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 5433
	cfg.Database.Name = "analytics"
	cfg.Database.User = "reader"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "require"

	pgConfig := pgConfigFrom(cfg)

	assert.Equal(t, "db.internal", pgConfig.Host)
	assert.Equal(t, 5433, pgConfig.Port)
	assert.Equal(t, "analytics", pgConfig.Database)
	assert.Equal(t, "reader", pgConfig.User)
	assert.Equal(t, "secret", pgConfig.Password)
	assert.Equal(t, "require", pgConfig.SSLMode)
	assert.Equal(t, 30*time.Second, pgConfig.Timeout)
}

func TestWindowsFromConfig(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Windows.Customer = 7
	cfg.Windows.CrossRegion = 365

	w := windowsFromConfig(cfg)

	assert.Equal(t, 7, w.Customer)
	assert.Equal(t, 30, w.Similarity)
	assert.Equal(t, 90, w.HighValue)
	assert.Equal(t, 365, w.CrossRegion)
}
