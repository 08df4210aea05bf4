package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/pkg/errors"
)

type sessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB, logger *zap.Logger) *sessionRepository {
	return &sessionRepository{db: db, logger: logger}
}

func (r *sessionRepository) GetByShop(ctx context.Context, shop string) (*domain.Session, error) {
	query := `
		SELECT id, shop, access_token, created_at, updated_at
		FROM sessions
		WHERE shop = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var s domain.Session
	err := r.db.QueryRowContext(ctx, query, shop).Scan(
		&s.ID, &s.Shop, &s.AccessToken, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "session", ID: shop}
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.Error(err), zap.String("shop", shop))
		return nil, err
	}
	return &s, nil
}
