package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	signer, err := NewSigner("test-secret", time.Hour, "dev")
	require.NoError(t, err)

	token, issued, err := signer.Sign("admin-1", "admin@example.com", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signer, err := NewSigner("test-secret", time.Minute, "dev")
	require.NoError(t, err)
	base := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return base }

	token, _, err := signer.Sign("admin-1", "", "")
	require.NoError(t, err)

	signer.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = signer.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParseRejectsForeignSecret(t *testing.T) {
	a, err := NewSigner("secret-a", time.Hour, "dev")
	require.NoError(t, err)
	b, err := NewSigner("secret-b", time.Hour, "dev")
	require.NoError(t, err)

	token, _, err := a.Sign("admin-1", "", "")
	require.NoError(t, err)
	_, err = b.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSignerRequiresSecretInProduction(t *testing.T) {
	_, err := NewSigner("", time.Hour, "production")
	require.Error(t, err)

	signer, err := NewSigner("", 0, "dev")
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, signer.TTL())
}
