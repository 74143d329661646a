// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesSaltedArgon2id(t *testing.T) {
	hash1, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash1, "$argon2id$"))

	hash2, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash2, "same password must hash differently per salt")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	valid, err := VerifyPassword("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-an-encoded-hash")
	require.Error(t, err)

	_, err = VerifyPassword("anything", "$sha256$deadbeef")
	require.Error(t, err)
}

func TestVerifyPasswordTimingSafeWithMissingHash(t *testing.T) {
	valid, newHash, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, newHash)

	empty := ""
	valid, _, err = VerifyPasswordTimingSafe("anything", &empty)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordWithRehashKeepsCurrentParams(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	valid, newHash, err := VerifyPasswordWithRehash("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, newHash, "current params need no rehash")
}
