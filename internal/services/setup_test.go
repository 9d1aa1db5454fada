package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

func setupTestDB() {
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic("failed to connect database")
	}
	db.Migrator().DropTable(&models.Execution{}, &models.PromptTemplate{}, &models.Tag{}, &models.Category{})
	if err := database.Migrate(db); err != nil {
		panic("failed to migrate database")
	}
	database.DB = db
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

// setupTest prepares a fresh database and cache for one test.
func setupTest(t *testing.T) (context.Context, *miniredis.Miniredis) {
	t.Helper()
	setupTestDB()
	mr := setupTestRedis()
	t.Cleanup(func() {
		database.RedisClient = nil
		mr.Close()
	})
	return context.Background(), mr
}

func mustCreateCategory(t *testing.T, ctx context.Context, name string) *models.Category {
	t.Helper()
	c, err := CreateCategory(ctx, CategoryInput{Name: &name})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func mustCreateTag(t *testing.T, ctx context.Context, name string) *models.Tag {
	t.Helper()
	tag, err := CreateTag(ctx, TagInput{Name: &name})
	if err != nil {
		t.Fatalf("create tag %q: %v", name, err)
	}
	return tag
}
