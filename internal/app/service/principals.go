package service

import (
	"context"

	"github.com/atinyakov/go-link-service/internal/storage"
)

// PrincipalService manages the local principal directory: the role, quota and
// active-flag attributes the core keeps for each identity-provider account.
// Credentials and sessions stay with the identity provider.
type PrincipalService struct {
	store storage.Store
	audit *AuditService
}

func NewPrincipals(store storage.Store, audit *AuditService) *PrincipalService {
	return &PrincipalService{store: store, audit: audit}
}

func (s *PrincipalService) Find(ctx context.Context, id string) (*storage.PrincipalRecord, error) {
	return s.store.FindPrincipal(ctx, id)
}

func (s *PrincipalService) List(ctx context.Context, query string, page, pageSize int) ([]storage.PrincipalRecord, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	return s.store.SearchPrincipals(ctx, query, limit, offset)
}

// ToggleActive flips the target's active flag. Administrators cannot lock
// themselves out: self-targeting fails before any state change.
func (s *PrincipalService) ToggleActive(ctx context.Context, targetID string, meta RequestMeta) (*storage.PrincipalRecord, error) {
	if targetID == meta.ActorID {
		return nil, ErrSelfTarget
	}

	target, err := s.store.FindPrincipal(ctx, targetID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.SetPrincipalActive(ctx, targetID, !target.Active)
	if err != nil {
		return nil, err
	}

	action := storage.ActionDeactivateUser
	if updated.Active {
		action = storage.ActionActivateUser
	}
	s.audit.Append(ctx, action, meta, map[string]string{
		"target_id":    updated.ID,
		"target_email": updated.Email,
	})
	return updated, nil
}

// ChangeRole assigns a new role to the target. Self-targeting fails before any
// state change, same as ToggleActive.
func (s *PrincipalService) ChangeRole(ctx context.Context, targetID, role string, meta RequestMeta) (*storage.PrincipalRecord, error) {
	if role != storage.RoleUser && role != storage.RoleAdmin {
		return nil, ErrInvalidRole
	}
	if targetID == meta.ActorID {
		return nil, ErrSelfTarget
	}

	target, err := s.store.FindPrincipal(ctx, targetID)
	if err != nil {
		return nil, err
	}
	oldRole := target.Role

	updated, err := s.store.SetPrincipalRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.audit.Append(ctx, storage.ActionChangeRole, meta, map[string]string{
		"target_id":    updated.ID,
		"target_email": updated.Email,
		"old_role":     oldRole,
		"new_role":     updated.Role,
	})
	return updated, nil
}
