package eddn

import (
	"testing"

	"github.com/galmarket/eddn-ingest/internal/entity"
	"github.com/guregu/null/v6"
)

func commodityMsg() *entity.FeedMessage {
	return &entity.FeedMessage{
		SystemName:  "Sol",
		StationName: "Abraham Lincoln",
		StationType: "Orbis",
		Timestamp:   "2024-09-01T14:03:55Z",
		Commodities: []entity.CommodityObservation{{Name: "gold"}},
	}
}

func TestFilterMessage(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*entity.FeedMessage)
		carrierOnly bool
		publicOnly  bool
		want        Verdict
	}{
		{
			name:   "plain message accepted",
			mutate: func(m *entity.FeedMessage) {},
			want:   Accepted,
		},
		{
			name:        "carrier only rejects other station types",
			mutate:      func(m *entity.FeedMessage) {},
			carrierOnly: true,
			want:        RejectedCarrier,
		},
		{
			name: "carrier only passes fleet carriers",
			mutate: func(m *entity.FeedMessage) {
				m.StationType = "FleetCarrier"
			},
			carrierOnly: true,
			want:        Accepted,
		},
		{
			name: "public only rejects restricted docking",
			mutate: func(m *entity.FeedMessage) {
				m.CarrierDockingAccess = null.StringFrom("squadronfriends")
			},
			publicOnly: true,
			want:       RejectedCarrier,
		},
		{
			name: "public only is case insensitive",
			mutate: func(m *entity.FeedMessage) {
				m.CarrierDockingAccess = null.StringFrom("All")
			},
			publicOnly: true,
			want:       Accepted,
		},
		{
			name:       "public only ignores missing docking access",
			mutate:     func(m *entity.FeedMessage) {},
			publicOnly: true,
			want:       Accepted,
		},
		{
			name: "carrier filter fires before completeness",
			mutate: func(m *entity.FeedMessage) {
				m.SystemName = ""
				m.Commodities = nil
			},
			carrierOnly: true,
			want:        RejectedCarrier,
		},
		{
			name: "missing system name is incomplete",
			mutate: func(m *entity.FeedMessage) {
				m.SystemName = ""
			},
			want: RejectedIncomplete,
		},
		{
			name: "missing timestamp is incomplete",
			mutate: func(m *entity.FeedMessage) {
				m.Timestamp = ""
			},
			want: RejectedIncomplete,
		},
		{
			name: "empty commodity list is incomplete",
			mutate: func(m *entity.FeedMessage) {
				m.Commodities = nil
			},
			want: RejectedIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := commodityMsg()
			tt.mutate(msg)

			got := FilterMessage(msg, tt.carrierOnly, tt.publicOnly)
			if got != tt.want {
				t.Errorf("FilterMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}
