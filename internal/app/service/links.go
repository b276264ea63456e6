package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/storage"
)

// maxGenerateAttempts bounds the collision retry loop. Hitting the bound means
// the code space is far fuller than the sizing assumption allows and should
// alert operators instead of retrying forever.
const maxGenerateAttempts = 5

// CreatedLink is the Create result: the stored link plus the two public URLs
// derived from the configured base URL.
type CreatedLink struct {
	Link       storage.LinkRecord
	PreviewURL string
	DirectURL  string
}

// LinkService owns the link lifecycle: creation with quota and validation,
// listing, deletion and the administrative operations.
type LinkService struct {
	store   storage.Store
	gen     *CodeGenerator
	audit   *AuditService
	logger  *zap.Logger
	baseURL string
}

func NewLinks(store storage.Store, gen *CodeGenerator, audit *AuditService, logger *zap.Logger, baseURL string) *LinkService {
	return &LinkService{
		store:   store,
		gen:     gen,
		audit:   audit,
		logger:  logger,
		baseURL: baseURL,
	}
}

// validateDestination accepts only syntactically valid absolute http(s) URLs.
func validateDestination(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Create validates, enforces the owner quota, then inserts with a bounded
// generate-insert retry loop. Collisions are detected solely through the
// store's unique-insert rejection.
func (s *LinkService) Create(ctx context.Context, owner *storage.PrincipalRecord, destinationURL string, meta RequestMeta) (*CreatedLink, error) {
	if err := validateDestination(destinationURL); err != nil {
		return nil, err
	}

	count, err := s.store.CountLinksByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if count >= int64(owner.MaxLinks) {
		return nil, ErrQuotaExceeded
	}

	link := storage.LinkRecord{
		ID:             uuid.NewString(),
		DestinationURL: destinationURL,
		OwnerID:        owner.ID,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}

	inserted := false
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		code, err := s.gen.Generate()
		if err != nil {
			return nil, err
		}

		link.ShortCode = code
		err = s.store.InsertLink(ctx, link)
		if err == nil {
			inserted = true
			break
		}
		if !errors.Is(err, storage.ErrCodeTaken) {
			return nil, err
		}

		s.logger.Warn("short code collision, regenerating",
			zap.String("code", code),
			zap.Int("attempt", attempt),
		)
	}
	if !inserted {
		return nil, ErrGenerationExhausted
	}

	s.audit.Append(ctx, storage.ActionCreateLink, meta, map[string]string{
		"link_id":         link.ID,
		"short_code":      link.ShortCode,
		"destination_url": link.DestinationURL,
	})

	return &CreatedLink{
		Link:       link,
		PreviewURL: s.baseURL + "/r/" + link.ShortCode,
		DirectURL:  s.baseURL + "/go/" + link.ShortCode,
	}, nil
}

// List returns the owner's links newest first together with the total count.
func (s *LinkService) List(ctx context.Context, ownerID string, page, pageSize int) ([]storage.LinkRecord, int64, error) {
	limit, offset := pageBounds(page, pageSize)

	links, err := s.store.FindLinksByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.store.CountLinksByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// Delete is the self-service path: a link owned by someone else is
// indistinguishable from a missing one.
func (s *LinkService) Delete(ctx context.Context, id, requesterID string, meta RequestMeta) error {
	link, err := s.store.FindLinkByID(ctx, id)
	if err != nil {
		return err
	}
	if link.OwnerID != requesterID {
		return storage.ErrNotFound
	}

	if err := s.store.DeleteLink(ctx, id); err != nil {
		return err
	}

	s.audit.Append(ctx, storage.ActionDeleteLink, meta, map[string]string{
		"link_id":    link.ID,
		"short_code": link.ShortCode,
	})
	return nil
}

// AdminDelete bypasses the ownership check and records a distinct action tag.
func (s *LinkService) AdminDelete(ctx context.Context, id string, meta RequestMeta) error {
	link, err := s.store.FindLinkByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteLink(ctx, id); err != nil {
		return err
	}

	s.audit.Append(ctx, storage.ActionAdminDeleteLink, meta, map[string]string{
		"link_id":    link.ID,
		"short_code": link.ShortCode,
		"link_owner": link.OwnerID,
	})
	return nil
}

// SetActive flips the lifecycle flag. Deactivated links keep their row and
// counters; only resolution stops.
func (s *LinkService) SetActive(ctx context.Context, id string, active bool, meta RequestMeta) (*storage.LinkRecord, error) {
	link, err := s.store.SetLinkActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	action := storage.ActionDeactivateLink
	if active {
		action = storage.ActionActivateLink
	}
	s.audit.Append(ctx, action, meta, map[string]string{
		"link_id":    link.ID,
		"short_code": link.ShortCode,
		"link_owner": link.OwnerID,
	})
	return link, nil
}

// Toggle flips the flag from its current state, for the admin toggle endpoint.
func (s *LinkService) Toggle(ctx context.Context, id string, meta RequestMeta) (*storage.LinkRecord, error) {
	link, err := s.store.FindLinkByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.SetActive(ctx, id, !link.Active, meta)
}

// Search is the administrative cross-owner lookup: case-insensitive substring
// match over destination URL or short code.
func (s *LinkService) Search(ctx context.Context, query string, page, pageSize int) ([]storage.LinkRecord, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	return s.store.SearchLinks(ctx, query, limit, offset)
}

// Totals reports the service-wide counters for the admin dashboard and the
// internal stats endpoint.
func (s *LinkService) Totals(ctx context.Context) (*storage.Stats, error) {
	return s.store.Totals(ctx)
}

// PingContext reports store reachability for the health endpoint.
func (s *LinkService) PingContext(ctx context.Context) error {
	return s.store.PingContext(ctx)
}
