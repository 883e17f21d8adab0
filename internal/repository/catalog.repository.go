package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Vacuum compacts the catalog file. Run after long ingestion sessions
// when requested; failures are the caller's to log and ignore.
func (r *CatalogRepository) Vacuum(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "VACUUM")
	return err
}
