package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBearerTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	tok, err := NewBearerToken(secret, 42, "ana@example.com", "Ana", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		_, ok := tk.Method.(*jwt.SigningMethodHMAC)
		require.True(t, ok, "token must be HMAC signed")
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.Equal(t, "Ana", claims["name"])
}

func TestNewBearerTokenWrongSecret(t *testing.T) {
	tok, err := NewBearerToken("right", 1, "a@b.c", "A", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // minimal cost keeps the test fast
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "S3cret"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret"))
}
