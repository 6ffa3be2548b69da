package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "catatankita-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "Lintang")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Lintang", claims.Name)
	assert.Equal(t, "catatankita-test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := testService(time.Hour).GenerateToken(uuid.New(), "")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	got, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	got, err = ExtractBearerToken("raw-token")
	require.NoError(t, err)
	assert.Equal(t, "raw-token", got)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
