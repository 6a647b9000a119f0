package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Password = "secret"

	assert.Equal(t,
		"host=localhost port=5432 dbname=registrar user=postgres password=secret sslmode=disable connect_timeout=10",
		cfg.DSN())

	pc, err := cfg.PoolConfig()
	require.NoError(t, err)
	assert.Equal(t, int32(4), pc.MaxConns)
	assert.Equal(t, "registrar", pc.ConnConfig.Database)
}

func TestMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	for i, m := range all {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.UpSQL)
		assert.NotEmpty(t, m.DownSQL)
	}
	assert.True(t, strings.Contains(all[0].UpSQL, "CREATE TABLE IF NOT EXISTS error_log"))

	pending := Pending(all, map[int]time.Time{1: time.Now()})
	require.Len(t, pending, len(all)-1)
	assert.Equal(t, 2, pending[0].Version)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(errors.New("other")))

	assert.False(t, IsTransient(nil))
	assert.True(t, IsTransient(&pgconn.PgError{Code: "08006"}))
	assert.True(t, IsTransient(&pgconn.PgError{Code: "57P01"}))
	assert.False(t, IsTransient(&pgconn.PgError{Code: "42P01"}))
	assert.False(t, IsTransient(ErrConnectionClosed))
	assert.False(t, IsTransient(context.Canceled))
	assert.True(t, IsTransient(errors.New("dial tcp: connection refused")))
}
