package bootstrap

import (
	"context"
	"time"

	"github.com/galmarket/eddn-ingest/internal/config"
	"github.com/galmarket/eddn-ingest/internal/entity"
	"github.com/galmarket/eddn-ingest/internal/infrastructure"
	"github.com/galmarket/eddn-ingest/internal/repository"
	"github.com/galmarket/eddn-ingest/internal/service/eddn"
	"github.com/galmarket/eddn-ingest/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func StartListener(cmd *cobra.Command, args []string) {
	opts := listenerOptions(cmd)

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	db, err := infrastructure.NewCatalogConnection(ctx, config.Env.Database)
	util.ContinueOrFatal(err)
	defer db.Close()

	systemRepo := repository.NewSystemRepository(db)
	stationRepo := repository.NewStationRepository(db)
	itemRepo := repository.NewItemRepository(db)
	stationItemRepo := repository.NewStationItemRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	listener := eddn.NewListener(
		opts,
		config.Env.EDDN,
		eddn.NewSubSocket(ctx),
		systemRepo,
		stationRepo,
		itemRepo,
		stationItemRepo,
		catalogRepo,
	)

	report, runErr := listener.Run(ctx)
	logReport(report)
	util.ContinueOrFatal(runErr)
}

func listenerOptions(cmd *cobra.Command) eddn.Options {
	host, _ := cmd.Flags().GetString("host")
	duration, _ := cmd.Flags().GetInt("duration")
	carrierOnly, _ := cmd.Flags().GetBool("carrier-only")
	publicOnly, _ := cmd.Flags().GetBool("public-only")
	optimize, _ := cmd.Flags().GetBool("optimize")
	debugDump, _ := cmd.Flags().GetBool("debug-dump")

	return eddn.Options{
		Host:        host,
		Duration:    time.Duration(duration) * time.Second,
		CarrierOnly: carrierOnly,
		PublicOnly:  publicOnly,
		Optimize:    optimize,
		DebugDump:   debugDump,
	}
}

func logReport(report entity.RunReport) {
	s := report.Stats
	logrus.WithFields(logrus.Fields{
		"run_id":             report.RunID,
		"elapsed":            report.Elapsed.Round(time.Millisecond).String(),
		"messages":           s.Messages,
		"commodity_messages": s.CommodityMessages,
		"journal_messages":   s.JournalMessages,
		"stations_matched":   s.StationsMatched,
		"stations_skipped":   s.StationsSkipped,
		"items_written":      s.ItemsWritten,
		"items_skipped":      s.ItemsSkipped,
		"carriers_filtered":  s.CarriersFiltered,
	}).Info("eddn: done")
}
