package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("user-1", "p@x.com", "under trial prisoner", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, email, role, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, "p@x.com", email)
	assert.Equal(t, "under trial prisoner", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "p@x.com", "judge", -time.Minute)
	require.NoError(t, err)

	_, _, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "p@x.com", "judge", time.Hour)
	require.NoError(t, err)

	_, _, _, err = ExtractClaimsFromToken(token + "x")
	assert.Error(t, err)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	c := HashToken("other-token")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
