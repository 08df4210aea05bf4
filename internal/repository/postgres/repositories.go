package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		TagIndex: NewTagIndexRepository(db, logger),
		Session:  NewSessionRepository(db, logger),
	}
}
