// Package worker contains the background goroutine that drains click events
// into the store in batches.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/storage"
)

// Repo is the slice of the store the worker needs.
type Repo interface {
	InsertClicks(context.Context, []storage.ClickRecord) error
}

// ClickTaskWorker batches click events and flushes them when the batch is full
// or the ticker fires. Flushes run on their own background-derived context so
// a client that disconnected mid-redirect still gets its click persisted.
type ClickTaskWorker struct {
	in            chan storage.ClickRecord
	logger        *zap.Logger
	repo          Repo
	batchSize     int
	flushInterval time.Duration
}

func NewClickTaskWorker(logger *zap.Logger, repo Repo, batchSize int, flushInterval time.Duration) *ClickTaskWorker {
	return &ClickTaskWorker{
		in:            make(chan storage.ClickRecord, batchSize*4),
		logger:        logger,
		repo:          repo,
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

func (w *ClickTaskWorker) GetInChannel() chan<- storage.ClickRecord {
	return w.in
}

// FlushRecords is the worker loop. It exits when the input channel is closed,
// flushing whatever is pending first.
func (w *ClickTaskWorker) FlushRecords() {
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	var pending []storage.ClickRecord

	flush := func() {
		if len(pending) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := w.repo.InsertClicks(ctx, pending); err != nil {
			// At-least-once is the contract; dropping the batch here would
			// silently lose analytics, so log loudly and drop anyway rather
			// than grow without bound.
			w.logger.Error("cannot flush click batch",
				zap.Int("count", len(pending)),
				zap.Error(err),
			)
		}
		pending = pending[:0]
	}

	for {
		select {
		case click, ok := <-w.in:
			if !ok {
				flush()
				return
			}
			pending = append(pending, click)
			if len(pending) >= w.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
