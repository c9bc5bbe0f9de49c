package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/darthcode66/Snap-Self/pkg/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:           "db.internal",
		Port:           5432,
		User:           "snap",
		Password:       `p w'd\x`,
		Name:           "snap_self",
		SSLMode:        "disable",
		ConnectTimeout: 5 * time.Second,
	}

	assert.Equal(t,
		`host=db.internal port=5432 user=snap password='p w\'d\\x' dbname=snap_self sslmode=disable application_name=snap-self connect_timeout=5`,
		DSN(cfg))
}

func TestDSNOmitsEmptyValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "localhost", Name: "snap_self"})

	assert.Equal(t, "host=localhost dbname=snap_self application_name=snap-self", dsn)
}
