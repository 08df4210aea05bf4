package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/api/middleware"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/service"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
)

// newShopClient builds a Shopify client from the session the middleware
// resolved for this request.
func newShopClient(c *gin.Context, cfg *config.Config, logger *zap.Logger) (*shopify.Client, bool) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return shopify.NewClient(session.Shop, session.AccessToken, cfg.Shopify.APIVersion, logger), true
}

// HandleListProducts handles GET /app/bulk-products: one page of
// filtered product summaries, the filter facets, and, after a save, the
// edited-products summary. Changing any filter term restarts pagination
// from a null cursor; the client never reuses a cursor across filter
// sets, and collection scope supersedes the field filters entirely.
func HandleListProducts(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := newShopClient(c, cfg, logger)
		if !ok {
			return
		}
		session, _ := middleware.GetSessionFromContext(c)

		params := service.ListParams{
			Cursor:       c.Query("cursor"),
			Query:        c.Query("query"),
			ProductType:  c.Query("productType"),
			Vendor:       c.Query("vendor"),
			Tag:          c.Query("tag"),
			CollectionID: c.Query("collectionId"),
		}

		lister := service.NewLister(client, repos.TagIndex, logger)

		page, err := lister.ListProducts(c.Request.Context(), params)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
			return
		}

		facets, err := lister.FetchFacets(c.Request.Context(), session.Shop)
		if err != nil {
			logger.Error("Failed to fetch facets", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch filter facets"})
			return
		}

		success := c.Query("success") == "1"
		var editedProducts []domain.EditedProduct
		if editedIDs := c.Query("edited_ids"); success && editedIDs != "" {
			ids := strings.Split(editedIDs, ",")
			editedProducts, err = lister.FetchEditedProducts(c.Request.Context(), ids)
			if err != nil {
				// The confirmation banner is best-effort; the listing
				// itself already succeeded.
				logger.Warn("Failed to fetch edited products summary", zap.Error(err))
				editedProducts = nil
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"products":       page.Products,
			"pageInfo":       page.PageInfo,
			"query":          params.Query,
			"productType":    params.ProductType,
			"vendor":         params.Vendor,
			"collectionId":   params.CollectionID,
			"tag":            params.Tag,
			"filters":        facets,
			"success":        success,
			"editedProducts": editedProducts,
			"shop":           session.Shop,
		})
	}
}

// HandleSelectProducts handles POST /app/bulk-products: validates the
// selection and redirects to the edit screen with comma-joined ids and
// fields. An empty selection on either axis redirects back to the
// listing.
func HandleSelectProducts(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ids, fields []string
		if raw := c.PostForm("selectedProductIds"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &ids); err != nil {
				logger.Warn("Bad selectedProductIds payload", zap.Error(err))
			}
		}
		if raw := c.PostForm("fieldsToEdit"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &fields); err != nil {
				logger.Warn("Bad fieldsToEdit payload", zap.Error(err))
			}
		}

		valid := fields[:0]
		for _, f := range fields {
			if domain.IsEditableField(f) {
				valid = append(valid, f)
			} else {
				logger.Warn("Ignoring unknown field", zap.String("field", f))
			}
		}
		fields = valid

		if len(ids) == 0 || len(fields) == 0 {
			c.Redirect(http.StatusFound, "/app/bulk-products")
			return
		}

		target := fmt.Sprintf("/app/bulk-edit?ids=%s&fields=%s",
			url.QueryEscape(strings.Join(ids, ",")),
			url.QueryEscape(strings.Join(fields, ",")),
		)
		c.Redirect(http.StatusFound, target)
	}
}
