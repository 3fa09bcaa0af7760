package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)

	assert.True(t, CheckPassword("pw1", hash))
	assert.False(t, CheckPassword("pw2", hash))
}

func TestHashPasswordNonDeterministic(t *testing.T) {
	hash1, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	hash2, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, CheckPassword("secret", hash1))
	assert.True(t, CheckPassword("secret", hash2))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("pw1", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("pw1", ""))
}

func TestCheckDummyPasswordAlwaysFalse(t *testing.T) {
	assert.False(t, CheckDummyPassword("anything"))
	assert.False(t, CheckDummyPassword(""))
}
