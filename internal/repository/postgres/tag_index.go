package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/pkg/errors"
)

type tagIndexRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTagIndexRepository creates a new tag index repository
func NewTagIndexRepository(db *sql.DB, logger *zap.Logger) *tagIndexRepository {
	return &tagIndexRepository{db: db, logger: logger}
}

func (r *tagIndexRepository) GetByShop(ctx context.Context, shop string) (*domain.TagIndex, error) {
	query := `
		SELECT id, shop, tags, updated_at
		FROM product_tags_index
		WHERE shop = $1
	`
	var idx domain.TagIndex
	err := r.db.QueryRowContext(ctx, query, shop).Scan(
		&idx.ID, &idx.Shop, pq.Array(&idx.Tags), &idx.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "tag_index", ID: shop}
	}
	if err != nil {
		r.logger.Error("Failed to get tag index", zap.Error(err), zap.String("shop", shop))
		return nil, err
	}
	return &idx, nil
}

func (r *tagIndexRepository) Replace(ctx context.Context, shop string, tags []string) error {
	query := `
		INSERT INTO product_tags_index (id, shop, tags, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (shop) DO UPDATE SET
			tags = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at
	`
	// pq.Array(nil slice) round-trips as NULL; keep an empty list so
	// a shop with zero products still has a valid index row.
	if tags == nil {
		tags = []string{}
	}
	_, err := r.db.ExecContext(ctx, query, uuid.New(), shop, pq.Array(tags), time.Now())
	if err != nil {
		r.logger.Error("Failed to replace tag index", zap.Error(err), zap.String("shop", shop), zap.Int("tags", len(tags)))
		return err
	}
	return nil
}
