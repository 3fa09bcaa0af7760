package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messagely/internal/util"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := GetUsernameFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = GetUsernameFromToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUsernameFromToken(token, testSecret)
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := GetUsernameFromToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}
