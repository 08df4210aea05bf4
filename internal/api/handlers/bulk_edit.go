package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/service"
	apperrors "github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/pkg/errors"
)

// HandleLoadBulkEdit handles GET /app/bulk-edit: resolves the inventory
// location, fetches current values for the requested products and
// returns the flat editable records. 400 when ids are missing or no
// location exists.
func HandleLoadBulkEdit(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := newShopClient(c, cfg, logger)
		if !ok {
			return
		}

		idsParam := c.Query("ids")
		if idsParam == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no product IDs"})
			return
		}
		ids := strings.Split(idsParam, ",")

		var fields []string
		if fieldsParam := c.Query("fields"); fieldsParam != "" {
			fields = strings.Split(fieldsParam, ",")
		}

		editor := service.NewEditor(client, logger)
		session, err := editor.LoadEditableProducts(c.Request.Context(), ids, fields)
		if err != nil {
			var precondition *apperrors.ErrPrecondition
			var validation *apperrors.ErrValidation
			switch {
			case errors.As(err, &precondition):
				c.JSON(http.StatusBadRequest, gin.H{"error": precondition.Error()})
			case errors.As(err, &validation):
				c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
			default:
				logger.Error("Failed to load editable products", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
			}
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

// HandleSubmitBulkEdit handles POST /app/bulk-edit: reconciles the
// submitted values against the round-tripped originals, dispatches the
// mutations, and redirects to the listing with the touched ids.
// Individual mutation failures are recorded and logged but do not stop
// the rest of the submission.
func HandleSubmitBulkEdit(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := newShopClient(c, cfg, logger)
		if !ok {
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form body"})
			return
		}

		reconciler := service.NewReconciler(client, logger)
		report, err := reconciler.ApplyBulkEdit(c.Request.Context(), c.Request.PostForm)
		if err != nil {
			logger.Error("Bulk edit failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply bulk edit"})
			return
		}

		if failed := report.Failed(); len(failed) > 0 {
			for _, f := range failed {
				logger.Warn("Patch failed",
					zap.String("entity_id", f.EntityID),
					zap.String("field_group", f.FieldGroup),
					zap.String("error", f.Error),
				)
			}
		}

		target := "/app/bulk-products?success=1"
		if len(report.EditedProductIDs) > 0 {
			target += "&edited_ids=" + url.QueryEscape(strings.Join(report.EditedProductIDs, ","))
		}
		c.Redirect(http.StatusFound, target)
	}
}
