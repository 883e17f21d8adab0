package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/galmarket/eddn-ingest/internal/entity"
	"github.com/jmoiron/sqlx"
)

type StationItemRepository struct {
	db *sqlx.DB
}

func NewStationItemRepository(db *sqlx.DB) *StationItemRepository {
	return &StationItemRepository{db: db}
}

// ReplaceSnapshot swaps a station's full snapshot in one transaction:
// every existing row for the station is deleted, then one row per
// resolved observation is inserted with the message's timestamp. On any
// error the transaction is rolled back and the prior snapshot survives
// untouched.
func (r *StationItemRepository) ReplaceSnapshot(ctx context.Context, stationID int64, modified int64, rows []entity.StationItem) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}

	written, err := replaceSnapshotTx(ctx, tx, stationID, modified, rows)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return written, nil
}

func replaceSnapshotTx(ctx context.Context, tx *sqlx.Tx, stationID int64, modified int64, rows []entity.StationItem) (int, error) {
	_, err := tx.ExecContext(ctx, "DELETE FROM StationItem WHERE station_id = ?", stationID)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, row := range rows {
		queryBuilder := sq.StatementBuilder.
			PlaceholderFormat(sq.Question).
			Insert(row.TableName()).
			Options("OR REPLACE").
			Columns(
				"station_id",
				"item_id",
				"modified",
				"from_live",
				"demand_price",
				"demand_units",
				"demand_level",
				"supply_price",
				"supply_units",
				"supply_level",
			).
			Values(
				stationID,
				row.ItemID,
				sq.Expr("datetime(?, 'unixepoch')", modified),
				row.FromLive,
				row.DemandPrice,
				row.DemandUnits,
				row.DemandLevel,
				row.SupplyPrice,
				row.SupplyUnits,
				row.SupplyLevel,
			)

		query, args, err := queryBuilder.ToSql()
		if err != nil {
			return 0, err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, err
		}

		written++
	}

	return written, nil
}

// GetByStation returns a station's current snapshot ordered by item id.
func (r *StationItemRepository) GetByStation(ctx context.Context, stationID int64) ([]entity.StationItem, error) {
	var rows []entity.StationItem
	err := r.db.SelectContext(ctx, &rows,
		"SELECT station_id, item_id, modified, from_live, demand_price, demand_units, demand_level, supply_price, supply_units, supply_level FROM StationItem WHERE station_id = ? ORDER BY item_id",
		stationID,
	)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
