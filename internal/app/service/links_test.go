package service

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

const testBaseURL = "http://localhost:8080"

func newTestLinks(store storage.Store) *LinkService {
	logger := zap.NewNop()
	return NewLinks(store, NewCodeGenerator(8), NewAudit(store, logger), logger, testBaseURL)
}

func testOwner(maxLinks int) *storage.PrincipalRecord {
	return &storage.PrincipalRecord{
		ID:        "11111111-1111-1111-1111-111111111111",
		Email:     "owner@example.com",
		Role:      storage.RoleUser,
		Active:    true,
		MaxLinks:  maxLinks,
		CreatedAt: time.Now().UTC(),
	}
}

func testMeta() RequestMeta {
	return RequestMeta{
		ActorID:    "11111111-1111-1111-1111-111111111111",
		ActorEmail: "owner@example.com",
		ClientIP:   "192.0.2.10",
		UserAgent:  "test-agent",
	}
}

func TestCreateLink(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestLinks(store)
	owner := testOwner(20)

	created, err := svc.Create(context.Background(), owner, "https://example.com/page", testMeta())
	require.NoError(t, err)

	assert.Len(t, created.Link.ShortCode, 8)
	assert.Equal(t, owner.ID, created.Link.OwnerID)
	assert.True(t, created.Link.Active)
	assert.Equal(t, testBaseURL+"/r/"+created.Link.ShortCode, created.PreviewURL)
	assert.Equal(t, testBaseURL+"/go/"+created.Link.ShortCode, created.DirectURL)

	stored, err := store.FindLinkByCode(context.Background(), created.Link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, created.Link.ID, stored.ID)
}

func TestCreateLinkInvalidDestination(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "no scheme", url: "example.com/page"},
		{name: "ftp scheme", url: "ftp://example.com/file"},
		{name: "javascript scheme", url: "javascript:alert(1)"},
		{name: "no host", url: "https://"},
		{name: "garbage", url: "://nope"},
	}

	store := storage.NewMemoryStore()
	svc := newTestLinks(store)
	owner := testOwner(20)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), owner, tt.url, testMeta())
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestCreateLinkQuota(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestLinks(store)
	owner := testOwner(3)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), owner, "https://example.com/page", testMeta())
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), owner, "https://example.com/one-too-many", testMeta())
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	count, err := store.CountLinksByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// collidingStore rejects the first N inserts the way a unique index would.
type collidingStore struct {
	*storage.MemoryStore
	rejections int
	attempts   int
}

func (s *collidingStore) InsertLink(ctx context.Context, link storage.LinkRecord) error {
	s.attempts++
	if s.rejections > 0 {
		s.rejections--
		return storage.ErrCodeTaken
	}
	return s.MemoryStore.InsertLink(ctx, link)
}

func TestCreateLinkCollisionRetry(t *testing.T) {
	store := &collidingStore{MemoryStore: storage.NewMemoryStore(), rejections: 2}
	svc := newTestLinks(store)

	created, err := svc.Create(context.Background(), testOwner(20), "https://example.com", testMeta())
	require.NoError(t, err)

	assert.Equal(t, 3, store.attempts)
	assert.Len(t, created.Link.ShortCode, 8)
}

func TestCreateLinkGenerationExhausted(t *testing.T) {
	store := &collidingStore{MemoryStore: storage.NewMemoryStore(), rejections: maxGenerateAttempts}
	svc := newTestLinks(store)

	_, err := svc.Create(context.Background(), testOwner(20), "https://example.com", testMeta())
	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.Equal(t, maxGenerateAttempts, store.attempts)
}

func TestCreateLinkAudited(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestLinks(store)
	meta := testMeta()

	created, err := svc.Create(context.Background(), testOwner(20), "https://example.com", meta)
	require.NoError(t, err)

	entries, total, err := store.FindAudit(context.Background(), "", 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	entry := entries[0]
	assert.Equal(t, storage.ActionCreateLink, entry.Action)
	assert.Equal(t, meta.ActorID, entry.ActorID)
	assert.Equal(t, meta.ActorEmail, entry.ActorEmail)
	assert.Equal(t, meta.ClientIP, entry.ClientIP)
	assert.Equal(t, meta.UserAgent, entry.UserAgent)
	assert.Equal(t, created.Link.ShortCode, entry.Details["short_code"])
	assert.WithinDuration(t, time.Now().UTC(), entry.Timestamp, 5*time.Second)
}

func TestDeleteLinkOwnership(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestLinks(store)
	owner := testOwner(20)

	created, err := svc.Create(context.Background(), owner, "https://example.com", testMeta())
	require.NoError(t, err)

	// Someone else's link id behaves exactly like a missing one.
	err = svc.Delete(context.Background(), created.Link.ID, "22222222-2222-2222-2222-222222222222", testMeta())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.FindLinkByID(context.Background(), created.Link.ID)
	require.NoError(t, err, "foreign delete must not remove the link")

	err = svc.Delete(context.Background(), created.Link.ID, owner.ID, testMeta())
	require.NoError(t, err)

	_, err = store.FindLinkByID(context.Background(), created.Link.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAdminDeleteBypassesOwnership(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestLinks(store)

	created, err := svc.Create(context.Background(), testOwner(20), "https://example.com", testMeta())
	require.NoError(t, err)

	adminMeta := RequestMeta{ActorID: "admin-1", ActorEmail: "admin@example.com"}
	err = svc.AdminDelete(context.Background(), created.Link.ID, adminMeta)
	require.NoError(t, err)

	entries, _, err := store.FindAudit(context.Background(), "admin-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, storage.ActionAdminDeleteLink, entries[0].Action)
	assert.Equal(t, testOwner(20).ID, entries[0].Details["link_owner"])
}

func TestToggleLink(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestLinks(store)

	created, err := svc.Create(context.Background(), testOwner(20), "https://example.com", testMeta())
	require.NoError(t, err)
	require.True(t, created.Link.Active)

	link, err := svc.Toggle(context.Background(), created.Link.ID, testMeta())
	require.NoError(t, err)
	assert.False(t, link.Active)

	link, err = svc.Toggle(context.Background(), created.Link.ID, testMeta())
	require.NoError(t, err)
	assert.True(t, link.Active)

	_, err = svc.Toggle(context.Background(), "missing", testMeta())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateLinkConcurrentDistinctCodes(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestLinks(store)
	owner := testOwner(1000)

	const workers = 50

	codes := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := svc.Create(context.Background(), owner, "https://example.com", testMeta())
			assert.NoError(t, err)
			if err == nil {
				codes <- created.Link.ShortCode
			}
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]struct{})
	for code := range codes {
		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %q", code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, workers)
}

func TestListNewestFirst(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestLinks(store)
	owner := testOwner(20)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.InsertLink(context.Background(), storage.LinkRecord{
			ID:             "link-" + string(rune('a'+i)),
			ShortCode:      "code" + string(rune('a'+i)),
			DestinationURL: "https://example.com",
			OwnerID:        owner.ID,
			Active:         true,
			CreatedAt:      now.Add(time.Duration(i) * time.Minute),
		}))
	}

	links, total, err := svc.List(context.Background(), owner.ID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, links, 3)
	assert.Equal(t, "link-e", links[0].ID)
	assert.Equal(t, "link-d", links[1].ID)

	links, _, err = svc.List(context.Background(), owner.ID, 2, 3)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "link-b", links[0].ID)
}
