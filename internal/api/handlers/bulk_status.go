package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/service"
)

// HandleBulkStatus handles GET /app/bulk-status: the shop's current
// bulk operation as-is, null when the shop never started one.
func HandleBulkStatus(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := newShopClient(c, cfg, logger)
		if !ok {
			return
		}

		op, err := service.FetchBulkOperationStatus(c.Request.Context(), client)
		if err != nil {
			logger.Error("Failed to fetch bulk operation status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bulk operation status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"bulkOperation": op})
	}
}
