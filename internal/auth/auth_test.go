package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)

	token, err := m.GenerateAccessToken("user-123", "a@example.com")
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Minute).GenerateAccessToken("u", "e@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Minute).ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken("u", "e@example.com")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestBcryptHashAndCompare(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4) // minimal cost to keep the test fast

	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, h.Compare(hash, "hunter2"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
