package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 42, "Tony", "tony@starkent.com", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	claims, err := ParseSessionToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.AccountID)
	assert.Equal(t, "Tony", claims.FirstName)
	assert.Equal(t, "tony@starkent.com", claims.Email)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 42, "Tony", "tony@starkent.com", 60)
	require.NoError(t, err)

	_, err = ParseSessionToken("some-other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 42, "Tony", "tony@starkent.com", -1)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenTampered(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 42, "Tony", "tony@starkent.com", 60)
	require.NoError(t, err)

	raw := []byte(tok.Token)
	raw[len(raw)-1] ^= 0x01
	_, err = ParseSessionToken(testSecret, string(raw))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken(testSecret, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(16)
	require.NoError(t, err)
	b, err := RandomHex(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
