package repository

import (
	"context"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
)

// TagIndexRepository defines tag index data access methods
type TagIndexRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.TagIndex, error)
	// Replace upserts the full tag set for a shop: update if a record
	// exists, else insert. Never merges.
	Replace(ctx context.Context, shop string, tags []string) error
}

// SessionRepository defines session data access methods. Sessions are
// created by the OAuth handshake outside this app; only reads happen
// here.
type SessionRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.Session, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	TagIndex TagIndexRepository
	Session  SessionRepository
}
