package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/api/handlers"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/api/middleware"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Product Bulk Update",
			"endpoints": []string{
				"GET /health",
				"GET /app/bulk-products",
				"POST /app/bulk-products",
				"GET /app/bulk-edit",
				"POST /app/bulk-edit",
				"GET /app/bulk-status",
				"POST /api/reindex-tags",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Embedded-admin routes (require a shop session)
	app := router.Group("/app")
	app.Use(middleware.ShopSessionMiddleware(cfg, repos, logger))
	{
		app.GET("/bulk-products", handlers.HandleListProducts(cfg, repos, logger))
		app.POST("/bulk-products", handlers.HandleSelectProducts(logger))
		app.GET("/bulk-edit", handlers.HandleLoadBulkEdit(cfg, logger))
		app.POST("/bulk-edit", handlers.HandleSubmitBulkEdit(cfg, logger))
		app.GET("/bulk-status", handlers.HandleBulkStatus(cfg, logger))
	}

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.ShopSessionMiddleware(cfg, repos, logger))
	{
		apiGroup.POST("/reindex-tags", handlers.HandleReindexTags(cfg, repos, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
