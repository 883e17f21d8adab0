package constant

const (
	// DefaultRelayHost is the public EDDN firehose endpoint.
	DefaultRelayHost = "tcp://eddn.edcd.io:9500"

	CommoditySchemaSuffix = "/commodity/3"
	JournalSchemaSuffix   = "/journal/1"

	// StationTypeFleetCarrier is the station type EDDN reports for
	// player-owned fleet carriers.
	StationTypeFleetCarrier = "FleetCarrier"

	// DockingAccessAll marks a carrier as dockable by anyone.
	DockingAccessAll = "all"

	// DebugDumpFile receives the most recent decompressed payload when
	// debug dumping is enabled.
	DebugDumpFile = "eddn_last.json"
)
