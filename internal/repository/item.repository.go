package repository

import (
	"context"

	"github.com/galmarket/eddn-ingest/internal/entity"
	"github.com/jmoiron/sqlx"
)

type ItemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// GetAll enumerates the catalog's items once, for building the symbol
// lookup at run start.
func (r *ItemRepository) GetAll(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.SelectContext(ctx, &items, "SELECT item_id, name FROM Item")
	if err != nil {
		return nil, err
	}

	return items, nil
}
