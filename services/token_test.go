package services

import (
	"testing"
	"time"

	"hotel/errors"
	"hotel/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuerRoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	token, err := issuer.Issue(&models.User{ID: 7, Email: "a@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, &models.Identity{UserID: 7, Email: "a@x.com", Role: models.RoleAdmin}, identity)
}

func TestJWTIssuerRejects(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	user := &models.User{ID: 7, Email: "a@x.com", Role: models.RoleCustomer}

	forged, err := NewJWTIssuer("other", time.Hour).Issue(user)
	require.NoError(t, err)
	expired, err := NewJWTIssuer("secret", -time.Minute).Issue(user)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserInfo: UserInfo{UserId: 7, Role: models.RoleAdmin}}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":     "not.a.token",
		"wrong key":   forged,
		"expired":     expired,
		"unsigned":    none,
		"empty token": "",
	} {
		_, err := issuer.Verify(token)
		assert.True(t, errors.Is(err, errors.ErrCodeUnauthenticated), name)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(0)
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
	assert.True(t, h.Compare(hash, "pw"))
	assert.False(t, h.Compare(hash, "PW"))
	assert.False(t, h.Compare("not-a-hash", "pw"))
}
