package services

import (
	"context"

	"hotel/errors"
	"hotel/models"
)

type callerKey struct{}

// WithCaller attaches a verified caller identity to ctx.
func WithCaller(ctx context.Context, caller *models.Identity) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the identity attached by WithCaller.
func CallerFromContext(ctx context.Context) (*models.Identity, bool) {
	caller, ok := ctx.Value(callerKey{}).(*models.Identity)
	return caller, ok && caller != nil
}

func RequireAuthenticated(ctx context.Context) (*models.Identity, error) {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnauthenticated, "authentication required")
	}
	return caller, nil
}

func RequireRole(ctx context.Context, role models.UserRole) (*models.Identity, error) {
	caller, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if caller.Role != role {
		return nil, errors.New(errors.ErrCodeForbidden, "role "+string(role)+" required")
	}
	return caller, nil
}

// RequireOwnerOrAdmin allows the owner of a resource and any admin.
func RequireOwnerOrAdmin(ctx context.Context, ownerID uint64) (*models.Identity, error) {
	caller, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if caller.UserID != ownerID && !caller.IsAdmin() {
		return nil, errors.New(errors.ErrCodeForbidden, "not the owner")
	}
	return caller, nil
}
