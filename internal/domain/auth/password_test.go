package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("use-the-force")
	require.NoError(t, err)
	assert.NotEqual(t, "use-the-force", hash)
	assert.LessOrEqual(t, len(hash), 80)

	assert.NoError(t, CheckPassword("use-the-force", hash))
	assert.Error(t, CheckPassword("dark-side", hash))
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", MaxPasswordLength+1))
	assert.Error(t, err)
}

func TestSecretMatches(t *testing.T) {
	assert.True(t, SecretMatches("sample key", "sample key"))
	assert.False(t, SecretMatches("sample", "sample key"))
	assert.False(t, SecretMatches("", ""))
}
