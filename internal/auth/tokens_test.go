package auth

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyHex(t *testing.T) string {
	t.Helper()
	key := make([]byte, keyBytesSize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return hex.EncodeToString(key)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc, err := NewTokenService(testKeyHex(t), -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyWrongKey(t *testing.T) {
	issuer, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestNewTokenServiceRejectsBadKeys(t *testing.T) {
	_, err := NewTokenService("tooshort", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(string(make([]byte, keyHexSize)), time.Hour)
	assert.Error(t, err, "non-hex characters are rejected")
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, first, keyHexLength)

	// A second load returns the same key.
	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Corrupt keys are rejected rather than silently regenerated.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("nope"), 0o600))
	_, err = LoadOrGenerateKey(dir)
	assert.Error(t, err)
}
