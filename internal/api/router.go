package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vbitzceo/voidbitzPromptWorkshop/config"
	_ "github.com/vbitzceo/voidbitzPromptWorkshop/docs"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/api/v1/category"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/api/v1/prompt"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/api/v1/tag"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/middleware"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/utils"
)

// NewRouter wires middleware and routes. Database and cache connections are
// expected to be open already.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		prompt.RegisterRoutes(v1)
		category.RegisterRoutes(v1)
		tag.RegisterRoutes(v1)
	}

	return router
}

// Health godoc
// @Summary Health check
// @Description Reports whether the database and cache are reachable
// @Tags health
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /health [get]
func Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{"database": "ok", "cache": "disabled"}
	healthy := true

	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unavailable"
		healthy = false
	}
	if database.RedisClient != nil {
		status["cache"] = "ok"
		if err := database.RedisClient.Ping(ctx).Err(); err != nil {
			status["cache"] = "unavailable"
			healthy = false
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, utils.NewResponse(http.StatusServiceUnavailable, "Unhealthy", status))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Healthy", status))
}
