package services

import (
	"context"
	"strings"
	"testing"

	"hotel/dto"
	"hotel/errors"
	"hotel/models"
	"hotel/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payload, err := f.auth.Register(ctx, dto.RegisterInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, payload.User.Role)
	assert.NotEqual(t, "pw", payload.User.Password)
	assert.True(t, f.hasher.Compare(payload.User.Password, "pw"))

	identity, err := f.tokens.Verify(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, payload.User.ID, identity.UserID)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, models.RoleCustomer, identity.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, dto.RegisterInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, dto.RegisterInput{Email: "a@x.com", Password: "other"})
	assert.True(t, errors.Is(err, errors.ErrCodeEmailInUse))

	// emails are compared as given
	_, err = f.auth.Register(ctx, dto.RegisterInput{Email: "A@x.com", Password: "pw"})
	assert.NoError(t, err)
}

func TestRegisterRoles(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "root@x.com", models.RoleAdmin)
	customer := f.user(t, "c@x.com", models.RoleCustomer)

	_, err := f.auth.Register(context.Background(), dto.RegisterInput{Email: "a@x.com", Password: "pw", Role: "ADMIN"})
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthenticated))

	_, err = f.auth.Register(as(customer), dto.RegisterInput{Email: "a@x.com", Password: "pw", Role: "ADMIN"})
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))

	_, err = f.auth.Register(context.Background(), dto.RegisterInput{Email: "a@x.com", Password: "pw", Role: "OWNER"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidRole))

	payload, err := f.auth.Register(as(admin), dto.RegisterInput{Email: "a@x.com", Password: "pw", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, payload.User.Role)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), dto.RegisterInput{Email: "nope", Password: "pw"})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	_, err = f.auth.Register(context.Background(), dto.RegisterInput{Email: "a@x.com"})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, dto.RegisterInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	_, wrongPassword := f.auth.Login(ctx, "a@x.com", "nope")
	_, unknownEmail := f.auth.Login(ctx, "b@x.com", "pw")
	assert.True(t, errors.Is(wrongPassword, errors.ErrCodeInvalidCredentials))
	assert.True(t, errors.Is(unknownEmail, errors.ErrCodeInvalidCredentials))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	payload, err := f.auth.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, payload.Token)
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.auth.SeedAdmin(ctx, "root@x.com", "secret", "")
	require.NoError(t, err)

	payload, err := f.auth.Login(ctx, "", "secret")
	assert.Nil(t, payload)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidCredentials))

	_, err = f.auth.Login(ctx, "root@x.com", "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidCredentials))
}

func TestRegisterRejectsPasswordBcryptCannotHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	long := strings.Repeat("p", 80)

	_, err := f.auth.Register(ctx, dto.RegisterInput{Email: "a@x.com", Password: long})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	_, _, err = f.auth.SeedAdmin(ctx, "root@x.com", long, "")
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	users, err := f.store.Users().FindMany(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, created, err := f.auth.SeedAdmin(ctx, "root@x.com", "secret", "Root")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdmin, user.Role)
	require.NotNil(t, user.FullName)
	assert.Equal(t, "Root", *user.FullName)

	again, created, err := f.auth.SeedAdmin(ctx, "root@x.com", "changed", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	_, err = f.auth.Login(ctx, "root@x.com", "secret")
	assert.NoError(t, err)

	_, _, err = f.auth.SeedAdmin(ctx, "root@x.com", "", "")
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestUserQueries(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "root@x.com", models.RoleAdmin)
	a := f.user(t, "a@x.com", models.RoleCustomer)
	b := f.user(t, "b@x.com", models.RoleCustomer)

	_, err := f.auth.ListUsers(as(a))
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
	users, err := f.auth.ListUsers(as(admin))
	require.NoError(t, err)
	assert.Len(t, users, 3)

	me, err := f.auth.GetUser(as(a), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", me.Email)
	_, err = f.auth.GetUser(as(b), a.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
	_, err = f.auth.GetUser(as(admin), 999)
	assert.True(t, errors.Is(err, errors.ErrCodeUserNotFound))
}
