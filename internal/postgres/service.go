package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"ordersight/pkg/errors"
)

// Service provides PostgreSQL database operations
type Service struct {
	db        *sql.DB
	config    Config
	connected bool
}

// Config holds PostgreSQL connection configuration
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	Timeout  time.Duration
}

// NewService creates a new PostgreSQL service
func NewService(config Config) *Service {
	return &Service{
		config: config,
	}
}

// Connect establishes a connection to PostgreSQL
func (s *Service) Connect() error {
	if s.connected {
		return nil
	}

	db, err := sql.Open("postgres", s.config.DSN())
	if err != nil {
		return errors.ConnectionError("Failed to open PostgreSQL connection", err).
			WithContext("host", s.config.Host).
			WithContext("database", s.config.Database)
	}

	// The validation run is a single sequential reader; one connection is enough
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(10 * time.Minute)

	connCtx, cancel := s.getContext()
	defer cancel()

	if err := db.PingContext(connCtx); err != nil {
		db.Close()

		if strings.Contains(err.Error(), "password authentication failed") {
			return errors.New(errors.ErrCodeAuthenticationFailed, "Authentication failed").
				WithContext("user", s.config.User).
				WithSuggestions(
					"Verify your username and password",
					"Check pg_hba.conf allows this user from your host",
				)
		}

		return errors.ConnectionError("Failed to connect to PostgreSQL", err).
			WithContext("host", s.config.Host).
			WithContext("database", s.config.Database)
	}

	s.db = db
	s.connected = true
	return nil
}

// Close closes the database connection
func (s *Service) Close() error {
	if !s.connected {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	s.connected = false
	return nil
}

// ExecuteQuery executes a query with arguments and returns results
func (s *Service) ExecuteQuery(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if !s.connected {
		return nil, fmt.Errorf("not connected to database")
	}

	return s.db.QueryContext(ctx, query, args...)
}

// TestConnection tests the database connection
func (s *Service) TestConnection() error {
	if !s.connected {
		if err := s.Connect(); err != nil {
			return err
		}
	}

	ctx, cancel := s.getContext()
	defer cancel()

	return s.db.PingContext(ctx)
}

// GetDB returns the underlying database connection
func (s *Service) GetDB() *sql.DB {
	return s.db
}

// Helper methods

// DSN builds a lib/pq connection string from the configuration.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

func (s *Service) getContext() (context.Context, context.CancelFunc) {
	return s.withTimeout(context.Background())
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// ValidateConfig validates the PostgreSQL configuration
func ValidateConfig(config Config) error {
	if config.Host == "" {
		return fmt.Errorf("host is required")
	}
	if config.Port <= 0 {
		return fmt.Errorf("port is required")
	}
	if config.Database == "" {
		return fmt.Errorf("database is required")
	}
	if config.User == "" {
		return fmt.Errorf("user is required")
	}
	return nil
}
