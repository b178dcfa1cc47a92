package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/festival-benevoles/api/internal/config"
)

func TestDSN(t *testing.T) {
	conf := &config.PostgresConfig{
		Host:     "db",
		Port:     "5432",
		User:     "festival",
		Password: "pw",
		DB:       "festival",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=festival password=pw dbname=festival sslmode=disable", DSN(conf))

	conf.StatementTimeout = 3 * time.Second
	assert.Equal(t, "host=db port=5432 user=festival password=pw dbname=festival sslmode=disable options='-c statement_timeout=3000'", DSN(conf))
}
