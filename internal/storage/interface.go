// Package storage defines the persistence records and the store contract
// shared by the Postgres repository and the in-memory implementation.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a row does not exist. Callers must not be able
// to tell a missing link from an inactive one through the public resolver.
var ErrNotFound = errors.New("not found")

// ErrCodeTaken is returned by InsertLink when the short code is already
// assigned. The link service reacts by regenerating the code.
var ErrCodeTaken = errors.New("short code already taken")

// Store is the single durable-store contract. All cross-request coordination
// (code uniqueness, counter increments) relies on its atomicity guarantees.
type Store interface {
	// Links.
	InsertLink(ctx context.Context, link LinkRecord) error
	FindLinkByCode(ctx context.Context, code string) (*LinkRecord, error)
	FindLinkByID(ctx context.Context, id string) (*LinkRecord, error)
	FindLinksByOwner(ctx context.Context, ownerID string, limit, offset int) ([]LinkRecord, error)
	CountLinksByOwner(ctx context.Context, ownerID string) (int64, error)
	SearchLinks(ctx context.Context, query string, limit, offset int) ([]LinkRecord, int64, error)
	DeleteLink(ctx context.Context, id string) error
	SetLinkActive(ctx context.Context, id string, active bool) (*LinkRecord, error)
	IncrementClickCount(ctx context.Context, id string) error

	// Clicks.
	InsertClicks(ctx context.Context, clicks []ClickRecord) error
	RecentClicks(ctx context.Context, linkID string, limit int) ([]ClickRecord, error)
	CountClicks(ctx context.Context, linkID string) (int64, error)
	ClicksByBrowser(ctx context.Context, linkID string) ([]BrowserCount, error)
	ClicksByDay(ctx context.Context, linkID string, days int) ([]DayCount, error)

	// Audit trail.
	InsertAudit(ctx context.Context, entry AuditRecord) error
	FindAudit(ctx context.Context, actorID string, limit, offset int) ([]AuditRecord, int64, error)

	// Principal directory.
	InsertPrincipal(ctx context.Context, p PrincipalRecord) error
	FindPrincipal(ctx context.Context, id string) (*PrincipalRecord, error)
	SearchPrincipals(ctx context.Context, query string, limit, offset int) ([]PrincipalRecord, int64, error)
	SetPrincipalActive(ctx context.Context, id string, active bool) (*PrincipalRecord, error)
	SetPrincipalRole(ctx context.Context, id string, role string) (*PrincipalRecord, error)

	Totals(ctx context.Context) (*Stats, error)
	PingContext(ctx context.Context) error
}
