package feed

import (
	"context"
	"sync"
	"time"

	"auction-courier/core/gateway"

	"go.uber.org/zap"
)

// Source yields batches of changed auction documents since a cursor.
type Source interface {
	Changes(ctx context.Context, since Seq, limit int, filter string) (Changes, error)
}

// Handler processes one delivered auction document. It must not panic and
// must handle its own failures; the consumer never inspects its outcome.
type Handler func(ctx context.Context, auction gateway.Auction)

// Consumer turns the remote filtered change log into a sequence of auction
// events, in feed-delivery order.
type Consumer struct {
	source Source
	cfg    Config
	logger *zap.Logger

	mu     sync.Mutex
	cursor Seq
}

// NewConsumer creates a feed consumer.
func NewConsumer(source Source, cfg Config, logger *zap.Logger) *Consumer {
	return &Consumer{source: source, cfg: cfg, logger: logger}
}

// Cursor returns the current feed position.
func (c *Consumer) Cursor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.cursor)
}

func (c *Consumer) setCursor(seq Seq) {
	c.mu.Lock()
	c.cursor = seq
	c.mu.Unlock()
}

// Run polls the feed until ctx is cancelled, delivering every row to handle.
// Cancellation is cooperative: it is observed after the current batch is
// drained and after the empty-batch sleep, never mid-event, so shutdown is
// bounded by the sleep interval plus the in-flight event.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	limit := c.cfg.Limit
	if limit <= 0 {
		limit = 100
	}
	sleep := time.Duration(c.cfg.TimeoutSeconds) * time.Second
	if sleep <= 0 {
		sleep = 10 * time.Second
	}

	for {
		changes, err := c.source.Changes(ctx, c.cursor, limit, c.cfg.Filter)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Failed to poll changes feed", zap.Error(err))
			if !sleepCtx(ctx, sleep) {
				return nil
			}
			continue
		}
		c.setCursor(changes.LastSeq)

		if len(changes.Results) == 0 {
			if !sleepCtx(ctx, sleep) {
				return nil
			}
			continue
		}

		for _, row := range changes.Results {
			handle(ctx, row.Doc)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// sleepCtx sleeps for d unless ctx is cancelled first; it reports whether the
// caller should keep running.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
