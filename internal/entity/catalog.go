package entity

// Item is a tradable good known to the catalog store.
type Item struct {
	ID   int64  `db:"item_id"`
	Name string `db:"name"`
}

func (i Item) TableName() string {
	return "Item"
}

// StationItem is one persisted snapshot row: the state of a single
// commodity at a single station, as of Modified.
type StationItem struct {
	StationID   int64  `db:"station_id"`
	ItemID      int64  `db:"item_id"`
	Modified    string `db:"modified"`
	FromLive    int64  `db:"from_live"`
	DemandPrice int64  `db:"demand_price"`
	DemandUnits int64  `db:"demand_units"`
	DemandLevel int64  `db:"demand_level"`
	SupplyPrice int64  `db:"supply_price"`
	SupplyUnits int64  `db:"supply_units"`
	SupplyLevel int64  `db:"supply_level"`
}

func (s StationItem) TableName() string {
	return "StationItem"
}
