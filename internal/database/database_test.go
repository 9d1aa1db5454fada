package database

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbitzceo/voidbitzPromptWorkshop/config"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "workshop.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	assert.Same(t, db, DB)

	require.NoError(t, Migrate(db))
	for _, table := range []any{&models.Category{}, &models.Tag{}, &models.PromptTemplate{}, &models.Execution{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{RedisAddr: mr.Host(), RedisPort: mr.Port()}
	require.NoError(t, ConnectRedis(cfg))
	assert.NotNil(t, RedisClient)

	require.NoError(t, ConnectRedis(&config.Config{}))
	assert.Nil(t, RedisClient)
}

func TestConnectRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	err := ConnectRedis(&config.Config{RedisAddr: host, RedisPort: port})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis")
	assert.Nil(t, RedisClient)
}
