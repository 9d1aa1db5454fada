package prompt_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/api/v1/prompt"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
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

// setupRouter gives each test a fresh database, cache and executor.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	setupTestDB()
	mr := setupTestRedis()
	services.SetExecutor(nil)
	services.SetSuggester(nil)
	t.Cleanup(func() {
		database.RedisClient = nil
		services.SetExecutor(nil)
		mr.Close()
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	prompt.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}
