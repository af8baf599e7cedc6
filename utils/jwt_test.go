package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.GenerateToken("user-1", "admin")
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "GuestlistApp", claims.Issuer)
}

func TestParseTokenRejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	other := NewTokenManager("other-secret", time.Hour)
	foreign, err := other.GenerateToken("user-1", "admin")
	require.NoError(t, err)
	_, err = tm.ParseToken(foreign)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken("user-1", "admin")
	require.NoError(t, err)
	_, err = tm.ParseToken(old)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.ParseToken(unsigned)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestRevokeAndCleanup(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.GenerateToken("user-1", "staff")
	require.NoError(t, err)

	tm.Revoke(token)
	_, err = tm.ParseToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.Zero(t, tm.Cleanup())

	tm.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 1, tm.Cleanup())
}

func TestBlacklist(t *testing.T) {
	b := NewBlacklist()
	b.Add("live", time.Now().Add(time.Minute))
	b.Add("stale", time.Now().Add(-time.Minute))

	assert.True(t, b.Contains("live"))
	assert.False(t, b.Contains("stale"))
	assert.False(t, b.Contains("unknown"))
}
