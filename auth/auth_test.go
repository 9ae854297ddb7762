package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/store/memory"
)

func newTestService(t *testing.T, expiry time.Duration) (*Service, *domain.User) {
	t.Helper()

	st := memory.New()
	svc := NewService(st, FakeHasher{}, "test-secret", expiry)

	digest, err := svc.HashPassword("longenough1")
	require.NoError(t, err)

	user, err := st.CreateUser(context.Background(), &domain.User{
		Username: "alice",
		Password: digest,
		Fullname: "Alice Example",
	})
	require.NoError(t, err)

	return svc, user
}

func TestLoginRoundTrip(t *testing.T) {
	svc, user := newTestService(t, time.Hour)

	token, err := svc.Login(context.Background(), "alice", "longenough1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	view, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.ID)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "Alice Example", view.Fullname)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	_, err := svc.Login(context.Background(), "alice", "longenough2")
	require.Error(t, err)
	assert.Equal(t, domain.CodeUnauthorized, domain.CodeOf(err))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	_, err := svc.Login(context.Background(), "bob", "longenough1")
	require.Error(t, err)
	assert.Equal(t, domain.CodeUnauthorized, domain.CodeOf(err))
}

func TestVerifyExpiredToken(t *testing.T) {
	svc, user := newTestService(t, -time.Minute)

	token, err := svc.TokenFor(user.View())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.Equal(t, domain.CodeUnauthorized, domain.CodeOf(err))
}

func TestVerifyTamperedToken(t *testing.T) {
	svc, user := newTestService(t, time.Hour)

	token, err := svc.TokenFor(user.View())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.Verify(tampered)
	require.Error(t, err)
	assert.Equal(t, domain.CodeUnauthorized, domain.CodeOf(err))
}

func TestVerifyGarbage(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	_, err := svc.Verify("not.a.token")
	require.Error(t, err)
	assert.Equal(t, domain.CodeUnauthorized, domain.CodeOf(err))
}

// The token payload carries the public profile only; the password digest
// must never appear in the claims.
func TestTokenClaimsExcludePassword(t *testing.T) {
	svc, user := newTestService(t, time.Hour)

	token, err := svc.TokenFor(user.View())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), user.Password)
	assert.Contains(t, string(payload), `"sub":"alice"`)
}

func TestRefreshExtendsExpiry(t *testing.T) {
	svc, user := newTestService(t, time.Hour)

	first, err := svc.TokenFor(user.View())
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	second, err := svc.TokenFor(user.View())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	view, err := svc.Verify(second)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
}
