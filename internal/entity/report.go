package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunStats are the aggregate counters accumulated over one listener run.
type RunStats struct {
	Messages          int64
	CommodityMessages int64
	JournalMessages   int64
	StationsMatched   int64
	StationsSkipped   int64
	ItemsWritten      int64
	ItemsSkipped      int64
	CarriersFiltered  int64
}

// RunReport is the final report emitted when a listener run ends.
type RunReport struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Elapsed   time.Duration
	Stats     RunStats
}
