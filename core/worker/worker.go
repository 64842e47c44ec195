package worker

import (
	"context"
	"fmt"

	"auction-courier/core/bridge"
	"auction-courier/core/dispatch"
	"auction-courier/core/feed"
	"auction-courier/core/gateway"
	"auction-courier/core/logger"
	"auction-courier/core/queue"

	"go.uber.org/zap"
)

// Worker wires the feed consumer, the dispatch table and the transfer bridge
// into the running process. One goroutine drives the consume-dispatch
// pipeline, a second runs the bridge; the transfer queue is the only shared
// state between them.
type Worker struct {
	consumer *feed.Consumer
	table    *dispatch.Table
	bridge   *bridge.Bridge
	transfer *queue.Queue
	auctions gateway.AuctionGateway
	logger   *zap.Logger
}

// New creates a worker.
func New(
	consumer *feed.Consumer,
	table *dispatch.Table,
	br *bridge.Bridge,
	transfer *queue.Queue,
	auctions gateway.AuctionGateway,
	log *zap.Logger,
) *Worker {
	return &Worker{
		consumer: consumer,
		table:    table,
		bridge:   br,
		transfer: transfer,
		auctions: auctions,
		logger:   log,
	}
}

// Run starts the bridge and consumes the feed until ctx is cancelled. An
// in-flight event always runs to completion before shutdown takes effect.
func (w *Worker) Run(ctx context.Context) error {
	go w.bridge.Run(ctx)

	w.logger.Info("Getting auctions")
	return w.consumer.Run(ctx, w.Dispatch)
}

// Dispatch routes one auction document to its family strategy. Unsupported
// type tags are logged and dropped; they cannot become supported without a
// restart, so there is nothing to retry.
func (w *Worker) Dispatch(ctx context.Context, auction gateway.Auction) {
	w.logger.Info("Received auction",
		logger.MessageID(logger.MsgGetAuction),
		zap.String("auction", auction.ID),
		zap.String("status", auction.Status),
	)

	strategy, ok := w.table.Route(auction.Type)
	if !ok {
		w.logger.Warn("Auction type is not supported by this configuration",
			zap.String("auction", auction.ID),
			zap.String("type", auction.Type),
		)
		return
	}
	strategy.Process(ctx, auction)
}

// ProcessSingle fetches one auction by id and runs it through the pipeline
// once. Used by the single-run command.
func (w *Worker) ProcessSingle(ctx context.Context, auctionID string) error {
	auction, found, err := w.auctions.Get(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	if !found {
		w.logger.Warn("Auction not found", zap.String("auction", auctionID))
		return nil
	}
	w.Dispatch(ctx, auction)
	return nil
}

// QueueLen reports the transfer queue depth.
func (w *Worker) QueueLen() int {
	return w.transfer.Len()
}

// Cursor reports the consumer's feed position.
func (w *Worker) Cursor() string {
	return w.consumer.Cursor()
}
