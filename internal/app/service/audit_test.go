package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/storage"
)

func TestAuditAppendAndQuery(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewAudit(store, zap.NewNop())

	svc.Append(context.Background(), storage.ActionCreateLink, RequestMeta{ActorID: "actor-1"}, map[string]string{"link_id": "l1"})
	svc.Append(context.Background(), storage.ActionDeleteLink, RequestMeta{ActorID: "actor-1"}, nil)
	svc.Append(context.Background(), storage.ActionChangeRole, RequestMeta{ActorID: "actor-2"}, nil)

	entries, total, err := svc.Query(context.Background(), "actor-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)

	entries, total, err = svc.Query(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, entries, 3)

	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
	}
}

// failingAuditStore rejects every audit insert.
type failingAuditStore struct {
	*storage.MemoryStore
}

func (s *failingAuditStore) InsertAudit(context.Context, storage.AuditRecord) error {
	return errors.New("store down")
}

func TestAuditAppendSwallowsFailure(t *testing.T) {
	store := &failingAuditStore{MemoryStore: storage.NewMemoryStore()}
	svc := NewAudit(store, zap.NewNop())

	// A failed append must never propagate to the caller.
	assert.NotPanics(t, func() {
		svc.Append(context.Background(), storage.ActionCreateLink, RequestMeta{ActorID: "actor-1"}, nil)
	})
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantLimit  int
		wantOffset int
	}{
		{name: "first page", page: 1, pageSize: 10, wantLimit: 10, wantOffset: 0},
		{name: "third page", page: 3, pageSize: 20, wantLimit: 20, wantOffset: 40},
		{name: "zero page normalized", page: 0, pageSize: 10, wantLimit: 10, wantOffset: 0},
		{name: "negative page normalized", page: -5, pageSize: 10, wantLimit: 10, wantOffset: 0},
		{name: "zero page size normalized", page: 2, pageSize: 0, wantLimit: 10, wantOffset: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pageBounds(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
