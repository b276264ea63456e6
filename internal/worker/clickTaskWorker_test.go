package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/storage"
)

// captureRepo records every flushed batch.
type captureRepo struct {
	mu      sync.Mutex
	batches [][]storage.ClickRecord
}

func (r *captureRepo) InsertClicks(_ context.Context, clicks []storage.ClickRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make([]storage.ClickRecord, len(clicks))
	copy(batch, clicks)
	r.batches = append(r.batches, batch)
	return nil
}

func (r *captureRepo) snapshot() [][]storage.ClickRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]storage.ClickRecord, len(r.batches))
	copy(out, r.batches)
	return out
}

func (r *captureRepo) totalClicks() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, b := range r.batches {
		n += len(b)
	}
	return n
}

func click(id string) storage.ClickRecord {
	return storage.ClickRecord{ID: id, LinkID: "link-1", Timestamp: time.Now().UTC()}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestWorkerFlushesOnBatchSize(t *testing.T) {
	repo := &captureRepo{}
	w := NewClickTaskWorker(zap.NewNop(), repo, 3, time.Hour)

	go w.FlushRecords()

	in := w.GetInChannel()
	in <- click("c1")
	in <- click("c2")
	in <- click("c3")

	waitFor(t, func() bool { return repo.totalClicks() == 3 })

	batches := repo.snapshot()
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 3)

	close(in)
}

func TestWorkerFlushesOnTicker(t *testing.T) {
	repo := &captureRepo{}
	w := NewClickTaskWorker(zap.NewNop(), repo, 100, 20*time.Millisecond)

	go w.FlushRecords()

	in := w.GetInChannel()
	in <- click("c1")
	in <- click("c2")

	// Far below the batch size, so only the ticker can flush these.
	waitFor(t, func() bool { return repo.totalClicks() == 2 })

	close(in)
}

func TestWorkerFlushesPendingOnClose(t *testing.T) {
	repo := &captureRepo{}
	w := NewClickTaskWorker(zap.NewNop(), repo, 100, time.Hour)

	done := make(chan struct{})
	go func() {
		w.FlushRecords()
		close(done)
	}()

	in := w.GetInChannel()
	in <- click("c1")
	in <- click("c2")
	close(in)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit after channel close")
	}

	assert.Equal(t, 2, repo.totalClicks())
}
