package entity

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/guregu/null/v6"
)

// BracketUnknown is stored when the feed does not report a usable
// demand/supply level.
const BracketUnknown BracketLevel = -1

// BracketLevel is the coarse demand/supply level code carried by the feed.
// EDDN serializes an unknown bracket as an empty string rather than a
// number, so it needs a forgiving unmarshal.
type BracketLevel int64

func (b *BracketLevel) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "" || s == `""` || s == "null" {
		*b = BracketUnknown
		return nil
	}

	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		*b = BracketUnknown
		return nil
	}

	*b = BracketLevel(v)
	return nil
}

// Stored returns the value persisted to the catalog. The upstream feed
// uses bracket 0 for "no listing", which the catalog records as unknown.
func (b BracketLevel) Stored() int64 {
	if b == 0 {
		return int64(BracketUnknown)
	}
	return int64(b)
}

// Envelope is the outer EDDN document: a schema reference plus the
// game-generated message body.
type Envelope struct {
	SchemaRef string      `json:"$schemaRef"`
	Message   FeedMessage `json:"message"`
}

// FeedMessage is one station's full market listing at a point in time.
type FeedMessage struct {
	SystemName           string                 `json:"systemName"`
	StationName          string                 `json:"stationName"`
	StationType          string                 `json:"stationType"`
	CarrierDockingAccess null.String            `json:"carrierDockingAccess"`
	MarketID             int64                  `json:"marketId"`
	Timestamp            string                 `json:"timestamp"`
	Commodities          []CommodityObservation `json:"commodities"`
}

// Normalize trims the name fields in place. EDDN relays whatever the game
// client sent, including stray whitespace.
func (m *FeedMessage) Normalize() {
	m.SystemName = strings.TrimSpace(m.SystemName)
	m.StationName = strings.TrimSpace(m.StationName)
	m.StationType = strings.TrimSpace(m.StationType)
}

// DockingAccess reports the carrier docking policy when the message
// carries a non-empty one.
func (m *FeedMessage) DockingAccess() (string, bool) {
	if !m.CarrierDockingAccess.Valid || m.CarrierDockingAccess.String == "" {
		return "", false
	}
	return m.CarrierDockingAccess.String, true
}

// CommodityObservation is a single line of a market listing.
type CommodityObservation struct {
	Name          string       `json:"name"`
	SellPrice     int64        `json:"sellPrice"`
	Demand        int64        `json:"demand"`
	DemandBracket BracketLevel `json:"demandBracket"`
	BuyPrice      int64        `json:"buyPrice"`
	Stock         int64        `json:"stock"`
	StockBracket  BracketLevel `json:"stockBracket"`
}
