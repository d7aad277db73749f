package services

import (
	"fmt"
	"strconv"
	"time"

	"hotel/errors"
	"hotel/models"

	"github.com/dgrijalva/jwt-go"
)

// DefaultTokenTTL is the lifetime of a session token.
const DefaultTokenTTL = 24 * time.Hour

type UserInfo struct {
	UserId uint64          `json:"userid"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
	Verify(token string) (*models.Identity, error)
}

// JWTIssuer issues HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

func (j *JWTIssuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserInfo: UserInfo{
			UserId: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(j.ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

func (j *JWTIssuer) Verify(tokenString string) (*models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnauthenticated, "invalid session token", err)
	}
	if !token.Valid || claims.UserInfo.UserId == 0 || !claims.UserInfo.Role.Valid() {
		return nil, errors.New(errors.ErrCodeUnauthenticated, "malformed session token")
	}
	return &models.Identity{
		UserID: claims.UserInfo.UserId,
		Email:  claims.UserInfo.Email,
		Role:   claims.UserInfo.Role,
	}, nil
}
