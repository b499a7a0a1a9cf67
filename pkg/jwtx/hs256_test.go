package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestHS256(t *testing.T) *HS256 {
	t.Helper()

	h, err := NewHS256([]byte("test-secret-at-least-32-bytes-long!"), "todo-service")
	require.NoError(t, err)
	return h
}

func TestNewHS256_RejectsEmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256(nil, "todo-service")
	require.Error(t, err)
}

func TestHS256_SignAndVerify(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	claims := NewAccessClaims("user-123", "todo-service", DefaultAccessTokenTTL, time.Now())
	token, err := h.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "todo-service", got.Issuer)
	require.NotEmpty(t, got.ID, "jti should be populated")
}

func TestHS256_RejectsWrongSecret(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	other, err := NewHS256([]byte("a-completely-different-secret-value"), "todo-service")
	require.NoError(t, err)

	token, err := other.Sign(NewAccessClaims("user-123", "todo-service", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestHS256_RejectsExpired(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	// Issued far enough in the past that the TTL has elapsed.
	claims := NewAccessClaims("user-123", "todo-service", time.Minute, time.Now().Add(-2*time.Minute))
	token, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256_RejectsIssuerMismatch(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	foreign, err := NewHS256([]byte("test-secret-at-least-32-bytes-long!"), "other-service")
	require.NoError(t, err)

	token, err := foreign.Sign(NewAccessClaims("user-123", "other-service", time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestHS256_RejectsMalformed(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := h.Verify(tok)
		require.Error(t, err, "token %q should not verify", tok)
	}
}

func TestClaims_ValidateExpiry(t *testing.T) {
	t.Parallel()

	t.Run("valid token", func(t *testing.T) {
		c := NewAccessClaims("u", "iss", time.Hour, time.Now())
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		c := NewAccessClaims("u", "iss", time.Minute, time.Now().Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := NewAccessClaims("u", "iss", time.Hour, time.Now().Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})
}
