package eddn

import "github.com/galmarket/eddn-ingest/internal/entity"

// StatsCounter accumulates run-level counters. The pipeline is a single
// goroutine, so plain increments are enough.
type StatsCounter struct {
	stats entity.RunStats
}

func NewStatsCounter() *StatsCounter {
	return &StatsCounter{}
}

func (c *StatsCounter) IncMessages()          { c.stats.Messages++ }
func (c *StatsCounter) IncCommodityMessages() { c.stats.CommodityMessages++ }
func (c *StatsCounter) IncJournalMessages()   { c.stats.JournalMessages++ }
func (c *StatsCounter) IncStationsMatched()   { c.stats.StationsMatched++ }
func (c *StatsCounter) IncStationsSkipped()   { c.stats.StationsSkipped++ }
func (c *StatsCounter) IncCarriersFiltered()  { c.stats.CarriersFiltered++ }

func (c *StatsCounter) AddItemsWritten(n int) { c.stats.ItemsWritten += int64(n) }
func (c *StatsCounter) AddItemsSkipped(n int) { c.stats.ItemsSkipped += int64(n) }

// Snapshot returns a copy of the counters for the final report.
func (c *StatsCounter) Snapshot() entity.RunStats {
	return c.stats
}
