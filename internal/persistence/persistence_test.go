package persistence

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/config"
	"github.com/spec-kit/blood-bank-service/internal/persistence/migrations"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	raw, err := fs.ReadFile(migrations.FS, files[0])
	require.NoError(t, err)
	sql := string(raw)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "UNIQUE (hospital_id, blood_type)")
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS blood_inventory")
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestNewPostgres_EmptyDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}

func TestNewRedis_Disabled(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())
	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}
