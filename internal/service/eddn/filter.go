package eddn

import (
	"strings"

	"github.com/galmarket/eddn-ingest/internal/constant"
	"github.com/galmarket/eddn-ingest/internal/entity"
)

// Verdict classifies a message before any catalog work is done.
type Verdict int

const (
	// Accepted messages continue into resolution and storage.
	Accepted Verdict = iota
	// RejectedCarrier covers the configurable carrier filters and is
	// counted.
	RejectedCarrier
	// RejectedIncomplete covers messages missing required fields and is
	// dropped silently.
	RejectedIncomplete
)

// FilterMessage applies the pre-storage filters in order: carrier type,
// docking access, completeness. The order matters; a non-carrier station
// must count as filtered even when the message is otherwise unusable.
func FilterMessage(msg *entity.FeedMessage, carrierOnly, publicOnly bool) Verdict {
	if carrierOnly && msg.StationType != constant.StationTypeFleetCarrier {
		return RejectedCarrier
	}

	if publicOnly {
		if access, ok := msg.DockingAccess(); ok && !strings.EqualFold(access, constant.DockingAccessAll) {
			return RejectedCarrier
		}
	}

	if msg.SystemName == "" || msg.StationName == "" || msg.Timestamp == "" || len(msg.Commodities) == 0 {
		return RejectedIncomplete
	}

	return Accepted
}
