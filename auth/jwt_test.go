package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndValidate(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	token, err := tokens.Mint("admin", "Ada", "Lovelace", "ada@example.org")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
	assert.Equal(t, "ada@example.org", claims.Email)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)

	token, err := tokens.Mint("admin", "Ada", "Lovelace", "ada@example.org")
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsTamperedPayload(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	token, err := tokens.Mint("admin", "Ada", "Lovelace", "ada@example.org")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[10] == 'A' {
		payload[10] = 'B'
	} else {
		payload[10] = 'A'
	}
	tampered := strings.Join([]string{parts[0], string(payload), parts[2]}, ".")

	_, err = tokens.Validate(tampered)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	minter := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := minter.Mint("admin", "Ada", "Lovelace", "ada@example.org")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
	assert.False(t, VerifyPassword("not-a-hash", "hunter2"))
}
