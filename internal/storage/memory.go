package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps every record in process memory behind one mutex. It is
// selected when no database DSN is configured and backs most service tests.
type MemoryStore struct {
	mu         sync.Mutex
	links      map[string]LinkRecord // keyed by link ID
	codes      map[string]string     // short code -> link ID
	clicks     []ClickRecord
	audit      []AuditRecord
	principals map[string]PrincipalRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links:      make(map[string]LinkRecord),
		codes:      make(map[string]string),
		principals: make(map[string]PrincipalRecord),
	}
}

func (m *MemoryStore) InsertLink(_ context.Context, link LinkRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.codes[link.ShortCode]; taken {
		return ErrCodeTaken
	}

	m.codes[link.ShortCode] = link.ID
	m.links[link.ID] = link
	return nil
}

func (m *MemoryStore) FindLinkByCode(_ context.Context, code string) (*LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.codes[code]
	if !ok {
		return nil, ErrNotFound
	}

	link := m.links[id]
	return &link, nil
}

func (m *MemoryStore) FindLinkByID(_ context.Context, id string) (*LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &link, nil
}

func (m *MemoryStore) FindLinksByOwner(_ context.Context, ownerID string, limit, offset int) ([]LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned := make([]LinkRecord, 0)
	for _, link := range m.links {
		if link.OwnerID == ownerID {
			owned = append(owned, link)
		}
	}
	sortLinksNewestFirst(owned)

	return pageOf(owned, limit, offset), nil
}

func (m *MemoryStore) CountLinksByOwner(_ context.Context, ownerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, link := range m.links {
		if link.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) SearchLinks(_ context.Context, query string, limit, offset int) ([]LinkRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := strings.ToLower(query)
	matched := make([]LinkRecord, 0)
	for _, link := range m.links {
		if q == "" ||
			strings.Contains(strings.ToLower(link.DestinationURL), q) ||
			strings.Contains(strings.ToLower(link.ShortCode), q) {
			matched = append(matched, link)
		}
	}
	sortLinksNewestFirst(matched)

	return pageOf(matched, limit, offset), int64(len(matched)), nil
}

func (m *MemoryStore) DeleteLink(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return ErrNotFound
	}

	delete(m.links, id)
	delete(m.codes, link.ShortCode)

	// Cascade, same as the ON DELETE CASCADE constraint in Postgres.
	kept := m.clicks[:0]
	for _, c := range m.clicks {
		if c.LinkID != id {
			kept = append(kept, c)
		}
	}
	m.clicks = kept
	return nil
}

func (m *MemoryStore) SetLinkActive(_ context.Context, id string, active bool) (*LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return nil, ErrNotFound
	}

	link.Active = active
	m.links[id] = link
	return &link, nil
}

func (m *MemoryStore) IncrementClickCount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return ErrNotFound
	}

	now := time.Now().UTC()
	link.ClickCount++
	link.LastClickedAt = &now
	m.links[id] = link
	return nil
}

func (m *MemoryStore) InsertClicks(_ context.Context, clicks []ClickRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clicks = append(m.clicks, clicks...)
	return nil
}

func (m *MemoryStore) RecentClicks(_ context.Context, linkID string, limit int) ([]ClickRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recent := make([]ClickRecord, 0)
	for _, c := range m.clicks {
		if c.LinkID == linkID {
			recent = append(recent, c)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})

	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (m *MemoryStore) CountClicks(_ context.Context, linkID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, c := range m.clicks {
		if c.LinkID == linkID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) ClicksByBrowser(_ context.Context, linkID string) ([]BrowserCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int64)
	for _, c := range m.clicks {
		if c.LinkID == linkID {
			counts[c.BrowserFamily]++
		}
	}

	buckets := make([]BrowserCount, 0, len(counts))
	for browser, n := range counts {
		buckets = append(buckets, BrowserCount{Browser: browser, Count: n})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Browser < buckets[j].Browser
	})
	return buckets, nil
}

func (m *MemoryStore) ClicksByDay(_ context.Context, linkID string, days int) ([]DayCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	since := time.Now().UTC().AddDate(0, 0, -days)
	counts := make(map[string]int64)
	for _, c := range m.clicks {
		if c.LinkID == linkID && c.Timestamp.After(since) {
			counts[c.Timestamp.UTC().Format("2006-01-02")]++
		}
	}

	buckets := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		buckets = append(buckets, DayCount{Day: day, Count: n})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Day < buckets[j].Day
	})
	return buckets, nil
}

func (m *MemoryStore) InsertAudit(_ context.Context, entry AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.audit = append(m.audit, entry)
	return nil
}

func (m *MemoryStore) FindAudit(_ context.Context, actorID string, limit, offset int) ([]AuditRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]AuditRecord, 0)
	for _, e := range m.audit {
		if actorID == "" || e.ActorID == actorID {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	return pageOf(matched, limit, offset), int64(len(matched)), nil
}

func (m *MemoryStore) InsertPrincipal(_ context.Context, p PrincipalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.principals[p.ID] = p
	return nil
}

func (m *MemoryStore) FindPrincipal(_ context.Context, id string) (*PrincipalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.principals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) SearchPrincipals(_ context.Context, query string, limit, offset int) ([]PrincipalRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := strings.ToLower(query)
	matched := make([]PrincipalRecord, 0)
	for _, p := range m.principals {
		if q == "" || strings.Contains(strings.ToLower(p.Email), q) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return pageOf(matched, limit, offset), int64(len(matched)), nil
}

func (m *MemoryStore) SetPrincipalActive(_ context.Context, id string, active bool) (*PrincipalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.principals[id]
	if !ok {
		return nil, ErrNotFound
	}

	p.Active = active
	m.principals[id] = p
	return &p, nil
}

func (m *MemoryStore) SetPrincipalRole(_ context.Context, id, role string) (*PrincipalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.principals[id]
	if !ok {
		return nil, ErrNotFound
	}

	p.Role = role
	m.principals[id] = p
	return &p, nil
}

func (m *MemoryStore) Totals(_ context.Context) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return &Stats{
		TotalLinks:      int64(len(m.links)),
		TotalClicks:     int64(len(m.clicks)),
		TotalPrincipals: int64(len(m.principals)),
	}, nil
}

func (m *MemoryStore) PingContext(_ context.Context) error {
	return nil
}

func sortLinksNewestFirst(links []LinkRecord) {
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
}

func pageOf[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	page := all[offset:]
	if limit > 0 && len(page) > limit {
		page = page[:limit]
	}
	return page
}
