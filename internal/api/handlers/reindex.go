package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/api/middleware"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/service"
)

// HandleReindexTags handles POST /api/reindex-tags: rebuilds the tag
// index for the request's shop on demand, so the filter list picks up
// tags changed outside the app.
func HandleReindexTags(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := newShopClient(c, cfg, logger)
		if !ok {
			return
		}
		session, _ := middleware.GetSessionFromContext(c)

		if err := service.ReindexTags(c.Request.Context(), session.Shop, client, repos.TagIndex, logger); err != nil {
			logger.Error("Failed to reindex tags", zap.Error(err), zap.String("shop", session.Shop))
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
