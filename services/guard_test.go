package services

import (
	"context"
	"testing"

	"hotel/errors"
	"hotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	anon := context.Background()
	customer := WithCaller(anon, &models.Identity{UserID: 1, Role: models.RoleCustomer})
	admin := WithCaller(anon, &models.Identity{UserID: 2, Role: models.RoleAdmin})

	_, err := RequireAuthenticated(anon)
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthenticated))
	caller, err := RequireAuthenticated(customer)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), caller.UserID)

	_, err = RequireRole(anon, models.RoleAdmin)
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthenticated))
	_, err = RequireRole(customer, models.RoleAdmin)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
	_, err = RequireRole(admin, models.RoleAdmin)
	assert.NoError(t, err)

	_, err = RequireOwnerOrAdmin(customer, 1)
	assert.NoError(t, err)
	_, err = RequireOwnerOrAdmin(customer, 7)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
	_, err = RequireOwnerOrAdmin(admin, 7)
	assert.NoError(t, err)

	_, ok := CallerFromContext(WithCaller(anon, nil))
	assert.False(t, ok)
}
