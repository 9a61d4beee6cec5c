package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3nha-forte", 4) // low cost keeps the test fast
	require.NoError(t, err)
	assert.NotEqual(t, "s3nha-forte", hash)

	assert.True(t, VerifyPassword(hash, "s3nha-forte"))
	assert.False(t, VerifyPassword(hash, "s3nha-errada"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "s3nha-forte"))
}
