package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/voting-service/internal/domain"
	util "github.com/spec-kit/voting-service/pkg/util"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("voter-1", domain.SubjectTypeVoter)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "voter-1", claims.RegisteredClaims.Subject)
	assert.Equal(t, "voter-1", claims.VoterID)
	assert.Equal(t, domain.SubjectTypeVoter, claims.Subject)
}

func TestAdminTokenOmitsVoterID(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken("admin-1", domain.SubjectTypeAdmin)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.VoterID)
	assert.Equal(t, domain.SubjectTypeAdmin, claims.Subject)
}

func TestParseTokenFailures(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	t.Run("garbage is invalid", func(t *testing.T) {
		_, err := tm.ParseToken("not-a-token")
		require.Error(t, err)
		assert.True(t, util.IsCode(err, "TOKEN_INVALID"))
	})

	t.Run("wrong secret is invalid", func(t *testing.T) {
		other := NewTokenManager("other-secret", 60)
		token, _, err := other.GenerateToken("voter-1", domain.SubjectTypeVoter)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		require.Error(t, err)
		assert.True(t, util.IsCode(err, "TOKEN_INVALID"))
	})

	t.Run("expired is reported distinctly", func(t *testing.T) {
		expired := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
		token, _, err := expired.GenerateToken("voter-1", domain.SubjectTypeVoter)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		require.Error(t, err)
		assert.True(t, util.IsCode(err, "TOKEN_EXPIRED"))
	})
}
