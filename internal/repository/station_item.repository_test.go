package repository

import (
	"context"
	"testing"

	"github.com/galmarket/eddn-ingest/internal/entity"
)

func snapshotRow(itemID, demandUnits int64) entity.StationItem {
	return entity.StationItem{
		StationID:   10,
		ItemID:      itemID,
		FromLive:    1,
		DemandPrice: 9401,
		DemandUnits: demandUnits,
		DemandLevel: 2,
		SupplyPrice: 0,
		SupplyUnits: 0,
		SupplyLevel: -1,
	}
}

func TestStationItemRepository_ReplaceSnapshot(t *testing.T) {
	db := newTestCatalog(t)
	repo := NewStationItemRepository(db)
	ctx := context.Background()

	written, err := repo.ReplaceSnapshot(ctx, 10, 1725199435, []entity.StationItem{
		snapshotRow(100, 52),
		snapshotRow(101, 7),
	})
	if err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}
	if written != 2 {
		t.Fatalf("written = %d, want 2", written)
	}

	// A later snapshot carrying a different item set fully supersedes
	// the first; nothing from the old row set may survive.
	written, err = repo.ReplaceSnapshot(ctx, 10, 1725199500, []entity.StationItem{
		snapshotRow(101, 9),
	})
	if err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}
	if written != 1 {
		t.Fatalf("written = %d, want 1", written)
	}

	rows, err := repo.GetByStation(ctx, 10)
	if err != nil {
		t.Fatalf("GetByStation() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].ItemID != 101 || rows[0].DemandUnits != 9 {
		t.Errorf("row = %+v, want item 101 from the second snapshot", rows[0])
	}
	if rows[0].FromLive != 1 {
		t.Errorf("FromLive = %d, want 1", rows[0].FromLive)
	}
	if rows[0].Modified != "2024-09-01 14:05:00" {
		t.Errorf("Modified = %q, want unixepoch-rendered timestamp", rows[0].Modified)
	}
}

func TestStationItemRepository_ReplaceSnapshotEmpty(t *testing.T) {
	db := newTestCatalog(t)
	repo := NewStationItemRepository(db)
	ctx := context.Background()

	if _, err := repo.ReplaceSnapshot(ctx, 10, 1725199435, []entity.StationItem{snapshotRow(100, 52)}); err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}

	// A message whose observations all failed to resolve still clears
	// the prior snapshot; the delete is part of the same transaction.
	written, err := repo.ReplaceSnapshot(ctx, 10, 1725199500, nil)
	if err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}
	if written != 0 {
		t.Fatalf("written = %d, want 0", written)
	}

	rows, err := repo.GetByStation(ctx, 10)
	if err != nil {
		t.Fatalf("GetByStation() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestStationItemRepository_RollbackKeepsPriorSnapshot(t *testing.T) {
	db := newTestCatalog(t)

	// Recreate the snapshot table with a constraint the second insert
	// below violates, so the transaction fails after the delete and the
	// first insert have already run.
	db.MustExec(`DROP TABLE StationItem`)
	db.MustExec(`CREATE TABLE StationItem (
		station_id INTEGER NOT NULL, item_id INTEGER NOT NULL,
		modified TEXT, from_live INTEGER NOT NULL DEFAULT 0,
		demand_price INTEGER, demand_units INTEGER CHECK (demand_units >= 0), demand_level INTEGER,
		supply_price INTEGER, supply_units INTEGER, supply_level INTEGER,
		PRIMARY KEY (station_id, item_id)
	)`)

	repo := NewStationItemRepository(db)
	ctx := context.Background()

	if _, err := repo.ReplaceSnapshot(ctx, 10, 1725199435, []entity.StationItem{snapshotRow(100, 52)}); err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}

	written, err := repo.ReplaceSnapshot(ctx, 10, 1725199500, []entity.StationItem{
		snapshotRow(101, 7),
		snapshotRow(100, -5),
	})
	if err == nil {
		t.Fatal("ReplaceSnapshot() must surface the storage error")
	}
	if written != 0 {
		t.Errorf("written = %d, want 0 on a rolled-back transaction", written)
	}

	// The failed replace rolls back in full: the prior snapshot is
	// intact, never half-deleted, never mixed with the new rows.
	rows, err := repo.GetByStation(ctx, 10)
	if err != nil {
		t.Fatalf("GetByStation() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want the prior snapshot untouched", len(rows))
	}
	if rows[0].ItemID != 100 || rows[0].DemandUnits != 52 {
		t.Errorf("row = %+v, want the original hydrogen_fuel row", rows[0])
	}
	if rows[0].Modified != "2024-09-01 14:03:55" {
		t.Errorf("Modified = %q, want the original snapshot's timestamp", rows[0].Modified)
	}
}

func TestStationItemRepository_PersistsOriginFlag(t *testing.T) {
	db := newTestCatalog(t)
	repo := NewStationItemRepository(db)
	ctx := context.Background()

	imported := snapshotRow(100, 52)
	imported.FromLive = 0
	live := snapshotRow(101, 7)

	if _, err := repo.ReplaceSnapshot(ctx, 10, 1725199435, []entity.StationItem{imported, live}); err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}

	rows, err := repo.GetByStation(ctx, 10)
	if err != nil {
		t.Fatalf("GetByStation() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].FromLive != 0 {
		t.Errorf("item 100 FromLive = %d, want the row's own flag persisted", rows[0].FromLive)
	}
	if rows[1].FromLive != 1 {
		t.Errorf("item 101 FromLive = %d, want 1", rows[1].FromLive)
	}
}

func TestStationItemRepository_ScopedToStation(t *testing.T) {
	db := newTestCatalog(t)
	db.MustExec(`INSERT INTO Station (station_id, system_id, name) VALUES (11, 1, 'Galileo')`)

	repo := NewStationItemRepository(db)
	ctx := context.Background()

	other := snapshotRow(100, 3)
	other.StationID = 11

	if _, err := repo.ReplaceSnapshot(ctx, 10, 1725199435, []entity.StationItem{snapshotRow(100, 52)}); err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}
	if _, err := repo.ReplaceSnapshot(ctx, 11, 1725199435, []entity.StationItem{other}); err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}

	// Replacing one station's snapshot must not touch its neighbours.
	if _, err := repo.ReplaceSnapshot(ctx, 10, 1725199500, nil); err != nil {
		t.Fatalf("ReplaceSnapshot() error = %v", err)
	}

	rows, err := repo.GetByStation(ctx, 11)
	if err != nil {
		t.Fatalf("GetByStation() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("station 11 rows = %d, want 1", len(rows))
	}
}
