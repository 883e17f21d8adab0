package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/guregu/null/v6"
	"github.com/jmoiron/sqlx"
)

type StationRepository struct {
	db *sqlx.DB
}

func NewStationRepository(db *sqlx.DB) *StationRepository {
	return &StationRepository{db: db}
}

// GetIDByName resolves a station name case-insensitively, scoped to the
// system it belongs to.
func (r *StationRepository) GetIDByName(ctx context.Context, systemID int64, name string) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		"SELECT station_id FROM Station WHERE system_id = ? AND name = ? COLLATE NOCASE",
		systemID, name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateDockingAccess records the carrier docking policy reported by the
// feed. Callers treat failures as best-effort.
func (r *StationRepository) UpdateDockingAccess(ctx context.Context, stationID int64, access string) error {
	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Question).
		Update("Station").
		Set("carrier_docking_access", access).
		Where(sq.Eq{"station_id": stationID})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// GetDockingAccess reads the stored docking policy for a station.
func (r *StationRepository) GetDockingAccess(ctx context.Context, stationID int64) (null.String, error) {
	var access null.String
	err := r.db.GetContext(ctx, &access,
		"SELECT carrier_docking_access FROM Station WHERE station_id = ?", stationID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return null.String{}, ErrNotFound
	}
	if err != nil {
		return null.String{}, err
	}

	return access, nil
}
