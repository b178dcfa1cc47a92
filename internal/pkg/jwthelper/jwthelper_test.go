package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("signing-key")

	token, err := GenerateToken(key, 42, "curl/8.0", time.Minute)
	require.NoError(t, err)

	userID, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("a"), 1, "", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("b"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	key := []byte("signing-key")
	token, err := GenerateToken(key, 1, "", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(key, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken([]byte("k"), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
