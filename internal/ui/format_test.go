package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "auth failure",
			message: `pq: password authentication failed for user "postgres"`,
			want:    "Check PG_USER and PG_PASSWORD, or run 'ordersight setup'",
		},
		{
			name:    "connection refused",
			message: "dial tcp 127.0.0.1:5432: connect: connection refused",
			want:    "Verify the PostgreSQL host/port and that the server is running",
		},
		{
			name:    "missing relation",
			message: `pq: relation "customer_purchases" does not exist`,
			want:    "Verify the table exists or check that the data pipeline has run",
		},
		{
			name:    "permission denied",
			message: "pq: permission denied for table orders",
			want:    "Ensure the database user has SELECT privileges on the analytics tables",
		},
		{
			name:    "case insensitive",
			message: "CONNECTION REFUSED",
			want:    "Verify the PostgreSQL host/port and that the server is running",
		},
		{
			name:    "no match",
			message: "something else went wrong",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getSuggestion(tt.message))
		})
	}
}

func TestDisableColor(t *testing.T) {
	original := supportsColor
	defer func() { supportsColor = original }()

	supportsColor = true
	assert.NotEqual(t, "plain", ColorError("plain"))

	DisableColor()
	assert.Equal(t, "plain", ColorError("plain"))
	assert.Equal(t, "plain", ColorSuccess("plain"))
}
