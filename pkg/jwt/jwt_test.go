package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	m := NewManager("test-key", "invitehub", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "invitehub", claims.Issuer)
}

func TestValidate_WrongKey(t *testing.T) {
	m := NewManager("test-key", "invitehub", time.Hour)
	other := NewManager("other-key", "invitehub", time.Hour)

	token, err := m.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidate_WrongIssuer(t *testing.T) {
	m := NewManager("test-key", "someone-else", time.Hour)
	verifier := NewManager("test-key", "invitehub", time.Hour)

	token, err := m.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	m := NewManager("test-key", "invitehub", -time.Minute)

	token, err := m.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}
