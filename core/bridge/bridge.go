package bridge

import (
	"context"
	"time"

	"auction-courier/core/docstore"
	"auction-courier/core/queue"

	"go.uber.org/zap"
)

// Config holds configuration for the document transfer bridge.
type Config struct {
	// TransmitterTimeoutSeconds is the sleep after an empty queue wait.
	TransmitterTimeoutSeconds int `mapstructure:"transmitter_timeout_seconds" default:"15"`
	// PopTimeoutSeconds is the short queue wait per loop turn.
	PopTimeoutSeconds int `mapstructure:"pop_timeout_seconds" default:"2"`
	// FailureSleepSeconds is the pause after a failed transfer before the
	// loop resumes.
	FailureSleepSeconds int `mapstructure:"failure_sleep_seconds" default:"1"`
}

// FileSource fetches raw document bytes from the source document store.
type FileSource interface {
	GetFile(ctx context.Context, url string) ([]byte, error)
}

// Bridge drains the transfer queue, moving each document's bytes from the
// source store to the destination store. Failed jobs are re-enqueued and
// retried indefinitely: a persistently failing store slows the loop but
// never stops it and never loses a job.
type Bridge struct {
	transfer *queue.Queue
	source   FileSource
	target   docstore.Store
	cfg      Config
	logger   *zap.Logger
}

// New creates a transfer bridge.
func New(transfer *queue.Queue, source FileSource, target docstore.Store, cfg Config, logger *zap.Logger) *Bridge {
	return &Bridge{transfer: transfer, source: source, target: target, cfg: cfg, logger: logger}
}

// Run loops until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	popTimeout := secondsOr(b.cfg.PopTimeoutSeconds, 2)
	transmitterTimeout := secondsOr(b.cfg.TransmitterTimeoutSeconds, 15)
	failureSleep := secondsOr(b.cfg.FailureSleepSeconds, 1)

	for {
		if ctx.Err() != nil {
			return
		}
		job, ok := b.transfer.Pop(popTimeout)
		if !ok {
			if !sleepCtx(ctx, transmitterTimeout) {
				return
			}
			continue
		}

		if err := b.move(ctx, job); err != nil {
			b.logger.Error("Failed to transfer document",
				zap.String("get_url", job.GetURL),
				zap.Error(err),
			)
			b.transfer.Push(job)
			if !sleepCtx(ctx, failureSleep) {
				return
			}
		}
	}
}

func (b *Bridge) move(ctx context.Context, job queue.TransferJob) error {
	data, err := b.source.GetFile(ctx, job.GetURL)
	if err != nil {
		return err
	}
	b.logger.Debug("Received document file from source store",
		zap.String("get_url", job.GetURL),
	)

	if err := b.target.Upload(ctx, job.UploadURL, data); err != nil {
		return err
	}
	b.logger.Debug("Uploaded document file to target store",
		zap.String("upload_url", job.UploadURL),
	)
	return nil
}

func secondsOr(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Second
}

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
