package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", digest)
	assert.True(t, CheckPassword(digest, "s3cret"))
	assert.False(t, CheckPassword(digest, "wrong"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCheckPasswordMissingDigest(t *testing.T) {
	assert.False(t, CheckPassword("", "anything"))
	assert.False(t, CheckPassword("not-a-bcrypt-digest", "anything"))
}

func TestDummyCheckDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { DummyCheck("whatever") })
}
