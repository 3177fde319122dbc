package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hashed, "s3cret"))
	assert.Error(t, ComparePassword(hashed, "wrong"))
}

func TestHashPasswordClampsInvalidCost(t *testing.T) {
	hashed, err := HashPassword("s3cret", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
	assert.NoError(t, ComparePassword(hashed, "s3cret"))
}
