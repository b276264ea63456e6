package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuth("test-secret")

	token, err := auth.BuildToken("principal-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "principal-1", claims.PrincipalID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewAuth("secret-a").BuildToken("principal-1")
	require.NoError(t, err)

	_, err = NewAuth("secret-b").ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	auth := NewAuth("test-secret")

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := auth.ParseToken(raw)
		assert.Error(t, err, "token %q must be rejected", raw)
	}
}
