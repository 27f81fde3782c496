package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123")
	require.NoError(t, err)
	require.NotContains(t, string(hash), "pw123")
	require.True(t, strings.HasPrefix(string(hash), "$argon2id$"))
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("correct horse battery stable", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_SaltIsPerUser(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	ok, err := VerifyPassword("same password", first)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = VerifyPassword("same password", second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("whatever", []byte("not-a-hash"))
	require.Error(t, err)
}
