// internal/config/database_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "s3cret/with:chars",
		Database: "remote_estate",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Equal(t, "postgres://postgres:s3cret%2Fwith:chars@localhost:5432/remote_estate?sslmode=disable", dsn)
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "app",
		Database: "remote_estate",
		SSLMode:  "require",
	}

	assert.Equal(t, "postgres://app@db.internal:5433/remote_estate?sslmode=require", cfg.DSN())
}

func TestRedactedHidesPassword(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "hunter2",
		Database: "remote_estate",
		SSLMode:  "disable",
	}

	redacted := cfg.Redacted()
	assert.NotContains(t, redacted, "hunter2")
	assert.Contains(t, redacted, "xxxxx")
	assert.Contains(t, redacted, "remote_estate")
}
