// Package auth issues and verifies the bearer tokens protecting the API,
// and performs credential checks at login.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/store"
)

// Claims is the signed token payload: the public user profile plus the
// registered claims. The subject is the username. The password digest is
// never part of the payload because UserView cannot carry it.
type Claims struct {
	User domain.UserView `json:"user"`
	jwt.RegisteredClaims
}

type Service struct {
	store  store.Store
	hasher Hasher
	secret []byte
	expiry time.Duration
}

func NewService(s store.Store, hasher Hasher, secret string, expiry time.Duration) *Service {
	return &Service{store: s, hasher: hasher, secret: []byte(secret), expiry: expiry}
}

// HashPassword produces the storable digest for a raw password.
func (s *Service) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// Login verifies the credentials and returns a fresh token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if domain.CodeOf(err) == domain.CodeNotFound {
			return "", domain.Unauthorized("Incorrect username or password")
		}
		return "", err
	}

	if err := s.hasher.Compare(password, user.Password); err != nil {
		return "", domain.Unauthorized("Incorrect username or password")
	}

	return s.TokenFor(user.View())
}

// TokenFor signs a token for the given profile with a fresh expiry.
// Refresh reuses this with the profile recovered from the old token.
func (s *Service) TokenFor(user domain.UserView) (string, error) {
	now := time.Now()
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded profile.
func (s *Service) Verify(tokenString string) (domain.UserView, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return domain.UserView{}, domain.WrapError(domain.CodeUnauthorized, "Unauthorized", err)
	}
	return claims.User, nil
}
