package eddn

import (
	"strings"
	"time"
)

const naiveTimestampLayout = "2006-01-02T15:04:05"

// DedupGate tracks, per station, the timestamp of the last accepted
// snapshot during this run. It starts empty on every run, so the first
// message for a station is always accepted regardless of age.
type DedupGate struct {
	lastAccepted map[int64]int64
	now          func() time.Time
}

func NewDedupGate() *DedupGate {
	return &DedupGate{
		lastAccepted: make(map[int64]int64),
		now:          time.Now,
	}
}

// ParseTimestamp converts a feed timestamp to unix seconds. A trailing
// "Z" and an explicit "+00:00" are equivalent; a timestamp without zone
// information is taken as UTC. Unparseable input falls back to the
// current wall clock rather than failing the message.
func (g *DedupGate) ParseTimestamp(ts string) int64 {
	ts = strings.TrimSpace(ts)

	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Unix()
	}
	if t, err := time.Parse(naiveTimestampLayout, ts); err == nil {
		return t.Unix()
	}
	if t, err := time.Parse(naiveTimestampLayout+".999999999", ts); err == nil {
		return t.Unix()
	}

	return g.now().Unix()
}

// ShouldAccept reports whether a snapshot at the given timestamp is newer
// than everything already accepted for the station. Equal timestamps are
// duplicates and rejected.
func (g *DedupGate) ShouldAccept(stationID, timestamp int64) bool {
	last, ok := g.lastAccepted[stationID]
	if !ok {
		return true
	}
	return timestamp > last
}

// RecordAccepted advances the station's clock. Called only after a
// snapshot write landed at least one row.
func (g *DedupGate) RecordAccepted(stationID, timestamp int64) {
	g.lastAccepted[stationID] = timestamp
}
