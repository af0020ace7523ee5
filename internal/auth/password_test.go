package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)

	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.NoError(t, CheckPassword("correct horse battery staple", hash))
	assert.Error(t, CheckPassword("wrong password entirely", hash))
}

func TestHashPassword_RejectsShortPassword(t *testing.T) {
	_, err := HashPassword("short", 4)

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	first, err := HashPassword("correct horse battery staple", 4)
	require.NoError(t, err)
	second, err := HashPassword("correct horse battery staple", 4)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGenerateSessionSecret(t *testing.T) {
	first, err := GenerateSessionSecret()
	require.NoError(t, err)
	second, err := GenerateSessionSecret()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}
