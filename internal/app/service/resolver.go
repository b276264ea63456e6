package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/storage"
)

// ResolveMode selects between the two public entry points: Preview renders the
// interstitial without counting, Follow redirects and records the click.
type ResolveMode int

const (
	Preview ResolveMode = iota
	Follow
)

// LinkResolver maps short codes to destinations. Reserved path segments win
// over any stored link, and unknown and inactive codes are reported
// identically so callers cannot probe which codes ever existed.
type LinkResolver struct {
	store    storage.Store
	recorder *ClickRecorder
	logger   *zap.Logger
	reserved map[string]struct{}
}

func NewResolver(store storage.Store, recorder *ClickRecorder, logger *zap.Logger, reservedPaths []string) *LinkResolver {
	reserved := make(map[string]struct{}, len(reservedPaths))
	for _, p := range reservedPaths {
		reserved[p] = struct{}{}
	}
	return &LinkResolver{
		store:    store,
		recorder: recorder,
		logger:   logger,
		reserved: reserved,
	}
}

// Reserved reports whether the segment is configured as a literal path that
// must never be treated as a short code.
func (r *LinkResolver) Reserved(code string) bool {
	_, ok := r.reserved[code]
	return ok
}

// Resolve runs the pipeline: reserved check, lookup, active check, then the
// mode-dependent side effect. The reserved check comes before any store
// round trip.
func (r *LinkResolver) Resolve(ctx context.Context, code string, mode ResolveMode, visit Visit) (*storage.LinkRecord, error) {
	if r.Reserved(code) {
		return nil, storage.ErrNotFound
	}

	link, err := r.store.FindLinkByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !link.Active {
		return nil, storage.ErrNotFound
	}

	if mode == Follow {
		r.recorder.Record(link, visit)
	}
	return link, nil
}
