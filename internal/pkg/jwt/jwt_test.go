package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "finance@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	userID, ok := decoded.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessToken_Errors(t *testing.T) {
	_, _, err := NewJWTService("s", "1h").GenerateAccessToken("", "x@example.com")
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, _, err = NewJWTService("s", "forever").GenerateAccessToken("user-1", "x@example.com")
	assert.Error(t, err)
}

func TestDecode_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTService("one", "1h").GenerateAccessToken("user-1", "")
	require.NoError(t, err)

	_, err = NewJWTService("two", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
