package service

import (
	"context"

	"github.com/atinyakov/go-link-service/internal/storage"
)

//go:generate mockgen -source=interface.go -destination=../../mocks/mock_service.go -package=mocks

// LinkManagerIface is the handler-facing surface of the link registry.
type LinkManagerIface interface {
	Create(ctx context.Context, owner *storage.PrincipalRecord, destinationURL string, meta RequestMeta) (*CreatedLink, error)
	List(ctx context.Context, ownerID string, page, pageSize int) ([]storage.LinkRecord, int64, error)
	Delete(ctx context.Context, id, requesterID string, meta RequestMeta) error
	AdminDelete(ctx context.Context, id string, meta RequestMeta) error
	SetActive(ctx context.Context, id string, active bool, meta RequestMeta) (*storage.LinkRecord, error)
	Toggle(ctx context.Context, id string, meta RequestMeta) (*storage.LinkRecord, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]storage.LinkRecord, int64, error)
	Totals(ctx context.Context) (*storage.Stats, error)
	PingContext(ctx context.Context) error
}

// ResolverIface is the handler-facing surface of the redirect resolver.
type ResolverIface interface {
	Resolve(ctx context.Context, code string, mode ResolveMode, visit Visit) (*storage.LinkRecord, error)
}

var (
	_ LinkManagerIface = (*LinkService)(nil)
	_ ResolverIface    = (*LinkResolver)(nil)
)
