package cryptopackage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndCompare(t *testing.T) {
	hash, err := GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := ComparePasswordAndHash("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePasswordAndHash("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateUniqueSalt(t *testing.T) {
	first, err := GenerateFromPassword("same password")
	require.NoError(t, err)
	second, err := GenerateFromPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCompareInvalidHash(t *testing.T) {
	cases := []string{
		"",
		"not a hash",
		"$argon2i$v=19$m=65536,t=2,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536",
	}
	for _, encoded := range cases {
		_, err := ComparePasswordAndHash("password", encoded)
		assert.Error(t, err)
	}
}
