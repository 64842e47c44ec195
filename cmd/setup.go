package cmd

import (
	"context"

	"auction-courier/core/bridge"
	"auction-courier/core/config"
	"auction-courier/core/dispatch"
	"auction-courier/core/docstore"
	"auction-courier/core/feed"
	"auction-courier/core/gateway"
	"auction-courier/core/mapping"
	"auction-courier/core/queue"
	"auction-courier/core/retry"
	"auction-courier/core/worker"
	"auction-courier/feature/directlock"
	"auction-courier/feature/embedded"

	"go.uber.org/zap"
)

// buildWorker constructs the full pipeline from configuration: gateways,
// stores, dispatch table, transfer bridge and feed consumer. The dispatch
// table is built once here and the merged alias sets are published to the
// feed filter, so the upstream log only delivers relevant rows.
func buildWorker(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*worker.Worker, error) {
	lots := gateway.NewLotClient(cfg.Lots)
	auctions := gateway.NewAuctionClient(cfg.Auctions)
	assets := gateway.NewAssetClient(cfg.Assets)
	contracts := gateway.NewContractClient(cfg.Contracts)

	targetDocs, err := docstore.New(cfg.TargetDocs, logg)
	if err != nil {
		return nil, err
	}

	processed, err := mapping.New(cfg.Mapping, logg)
	if err != nil {
		return nil, err
	}

	transfer := queue.New(0)
	policy := retry.NewPolicy(logg)

	var families []dispatch.Family
	if len(cfg.DirectLock.Aliases) > 0 {
		families = append(families, dispatch.Family{
			Name:     "directlock",
			Aliases:  cfg.DirectLock.Aliases,
			Strategy: directlock.New(lots, auctions, assets, targetDocs, transfer, policy, logg),
		})
	}
	if len(cfg.Embedded.Aliases) > 0 {
		families = append(families, dispatch.Family{
			Name:     "embedded",
			Aliases:  cfg.Embedded.Aliases,
			Strategy: embedded.New(lots, auctions, contracts, processed, policy, logg),
		})
	}
	table := dispatch.NewTable(families...)

	feedClient := feed.NewClient(cfg.Feed)
	if err := feed.PushFilter(ctx, feedClient, table.Aliases("directlock"), table.Aliases("embedded"), logg); err != nil {
		return nil, err
	}

	consumer := feed.NewConsumer(feedClient, cfg.Feed, logg)
	br := bridge.New(transfer, auctions, targetDocs, cfg.Bridge, logg)

	return worker.New(consumer, table, br, transfer, auctions, logg), nil
}
