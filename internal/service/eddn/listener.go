package eddn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/galmarket/eddn-ingest/internal/config"
	"github.com/galmarket/eddn-ingest/internal/entity"
	"github.com/galmarket/eddn-ingest/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultReceiveBuffer = 64

// Options are the per-run settings, typically wired from CLI flags by
// the front end that launches the listener.
type Options struct {
	Host        string        // feed endpoint override, empty = config/env
	Duration    time.Duration // 0 = run until cancelled
	CarrierOnly bool
	PublicOnly  bool
	Optimize    bool
	DebugDump   bool
}

// Listener owns one ingestion run: the feed socket, the per-run symbol
// and dedupe state, and the catalog repositories. State built here is
// discarded when Run returns; nothing is shared across runs.
type Listener struct {
	opts    Options
	cfg     config.EDDNConfig
	socket  FeedSocket
	decoder *Decoder
	stats   *StatsCounter
	gate    *DedupGate
	symbols map[string]int64

	systems      *repository.SystemRepository
	stations     *repository.StationRepository
	items        *repository.ItemRepository
	stationItems *repository.StationItemRepository
	catalog      *repository.CatalogRepository
}

func NewListener(
	opts Options,
	cfg config.EDDNConfig,
	socket FeedSocket,
	systems *repository.SystemRepository,
	stations *repository.StationRepository,
	items *repository.ItemRepository,
	stationItems *repository.StationItemRepository,
	catalog *repository.CatalogRepository,
) *Listener {
	scratchDir := ""
	if opts.DebugDump {
		scratchDir = cfg.ScratchDir
	}

	return &Listener{
		opts:         opts,
		cfg:          cfg,
		socket:       socket,
		decoder:      NewDecoder(scratchDir),
		stats:        NewStatsCounter(),
		gate:         NewDedupGate(),
		systems:      systems,
		stations:     stations,
		items:        items,
		stationItems: stationItems,
		catalog:      catalog,
	}
}

// Run consumes the feed until the configured duration elapses, the
// context is cancelled, or the connection dies. Each frame is carried to
// completion before the next one is considered; cancellation never
// interrupts an in-flight message. The report is returned on every
// termination path.
func (l *Listener) Run(ctx context.Context) (entity.RunReport, error) {
	report := entity.RunReport{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}

	catalogItems, err := l.items.GetAll(ctx)
	if err != nil {
		return report, fmt.Errorf("load catalog items: %w", err)
	}
	l.symbols = BuildSymbolMap(catalogItems)

	host := l.opts.Host
	if host == "" {
		host = l.cfg.Host
	}

	// A dead feed endpoint is fatal; everything past this point is
	// resilient to individual bad frames.
	if err := l.socket.Dial(host); err != nil {
		return report, err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":       report.RunID,
		"host":         host,
		"carrier_only": l.opts.CarrierOnly,
		"public_only":  l.opts.PublicOnly,
		"symbols":      len(l.symbols),
	}).Info("eddn: listening")

	buffer := l.cfg.ReceiveBuffer
	if buffer <= 0 {
		buffer = defaultReceiveBuffer
	}

	frames := make(chan []byte, buffer)
	recvErr := make(chan error, 1)
	done := make(chan struct{})

	// Frames count as seen at receipt, so ones still queued at shutdown
	// make it into the report. Only the reader touches that counter; the
	// wg join below orders it before the stats snapshot.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			frame, err := l.socket.Recv()
			if err != nil {
				recvErr <- err
				return
			}
			l.stats.IncMessages()
			select {
			case frames <- frame:
			case <-done:
				return
			}
		}
	}()

	var deadline <-chan time.Time
	if l.opts.Duration > 0 {
		timer := time.NewTimer(l.opts.Duration)
		defer timer.Stop()
		deadline = timer.C
	}

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			logrus.Info("eddn: cancelled, shutting down")
			break loop
		case <-deadline:
			logrus.Info("eddn: duration reached, shutting down")
			break loop
		case err := <-recvErr:
			runErr = fmt.Errorf("feed receive: %w", err)
			logrus.Errorf("eddn: %v", runErr)
			break loop
		case frame := <-frames:
			l.handleFrame(ctx, frame)
		}
	}

	close(done)
	if err := l.socket.Close(); err != nil {
		logrus.Debugf("eddn: socket close: %v", err)
	}
	wg.Wait()

	if l.opts.Optimize {
		if err := l.catalog.Vacuum(context.Background()); err != nil {
			logrus.Warnf("eddn: vacuum failed: %v", err)
		}
	}

	report.Elapsed = time.Since(report.StartedAt)
	report.Stats = l.stats.Snapshot()

	return report, runErr
}

// handleFrame runs one frame through decode, dispatch and storage. Frame
// level failures are logged at debug and swallowed.
func (l *Listener) handleFrame(ctx context.Context, frame []byte) {
	env, kind, err := l.decoder.Decode(frame)
	if err != nil {
		logrus.Debugf("eddn: drop frame: %v", err)
		return
	}

	switch kind {
	case KindCommodity:
		l.stats.IncCommodityMessages()
		l.handleCommodity(ctx, &env.Message)
	case KindJournal:
		// Counted only. Journal events could map marketId to station
		// one day, nothing consumes them yet.
		l.stats.IncJournalMessages()
	}
}

func (l *Listener) handleCommodity(ctx context.Context, msg *entity.FeedMessage) {
	switch FilterMessage(msg, l.opts.CarrierOnly, l.opts.PublicOnly) {
	case RejectedCarrier:
		l.stats.IncCarriersFiltered()
		return
	case RejectedIncomplete:
		return
	}

	systemID, err := l.systems.GetIDByName(ctx, msg.SystemName)
	if errors.Is(err, repository.ErrNotFound) {
		l.stats.IncStationsSkipped()
		logrus.Debugf("eddn: unknown system %q for station %q", msg.SystemName, msg.StationName)
		return
	}
	if err != nil {
		logrus.Warnf("eddn: resolve system %q: %v", msg.SystemName, err)
		return
	}

	stationID, err := l.stations.GetIDByName(ctx, systemID, msg.StationName)
	if errors.Is(err, repository.ErrNotFound) {
		l.stats.IncStationsSkipped()
		logrus.Debugf("eddn: unknown station %q @ %q", msg.StationName, msg.SystemName)
		return
	}
	if err != nil {
		logrus.Warnf("eddn: resolve station %q @ %q: %v", msg.StationName, msg.SystemName, err)
		return
	}

	// The docking policy refreshes even when the snapshot itself turns
	// out to be stale. Best-effort, outside the snapshot transaction.
	if access, ok := msg.DockingAccess(); ok {
		if err := l.stations.UpdateDockingAccess(ctx, stationID, access); err != nil {
			logrus.Debugf("eddn: docking access update for station %d: %v", stationID, err)
		}
	}

	ts := l.gate.ParseTimestamp(msg.Timestamp)
	if !l.gate.ShouldAccept(stationID, ts) {
		return
	}

	rows, skipped := l.resolveObservations(stationID, msg)
	l.stats.AddItemsSkipped(skipped)

	written, err := l.stationItems.ReplaceSnapshot(ctx, stationID, ts, rows)
	if err != nil {
		logrus.Warnf("eddn: snapshot write for %q @ %q: %v", msg.StationName, msg.SystemName, err)
		return
	}

	// The station clock only advances when something landed, so a later
	// message with resolvable symbols can still supersede this one.
	if written > 0 {
		l.stats.IncStationsMatched()
		l.stats.AddItemsWritten(written)
		l.gate.RecordAccepted(stationID, ts)
	}
}

// resolveObservations maps feed observations to snapshot rows, dropping
// and counting any symbol the catalog does not know.
func (l *Listener) resolveObservations(stationID int64, msg *entity.FeedMessage) ([]entity.StationItem, int) {
	rows := make([]entity.StationItem, 0, len(msg.Commodities))
	skipped := 0

	for _, obs := range msg.Commodities {
		if obs.Name == "" {
			continue
		}

		itemID, ok := l.symbols[NormalizeSymbol(obs.Name)]
		if !ok {
			skipped++
			logrus.Debugf("eddn: unknown commodity %q at %q @ %q", obs.Name, msg.StationName, msg.SystemName)
			continue
		}

		rows = append(rows, entity.StationItem{
			StationID:   stationID,
			ItemID:      itemID,
			FromLive:    1,
			DemandPrice: obs.SellPrice,
			DemandUnits: obs.Demand,
			DemandLevel: obs.DemandBracket.Stored(),
			SupplyPrice: obs.BuyPrice,
			SupplyUnits: obs.Stock,
			SupplyLevel: obs.StockBracket.Stored(),
		})
	}

	return rows, skipped
}
