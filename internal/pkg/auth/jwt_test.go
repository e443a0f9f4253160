package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatecore/backend/internal/app/models"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		SessionExp:      time.Hour,
		VerificationExp: 24 * time.Hour,
		ResetExp:        time.Hour,
		TokenIssuer:     "test",
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()
	user := &models.User{ID: 42, Email: "jane@example.com", Role: models.RoleAdmin}

	token, err := svc.GenerateSessionToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestSessionTokenRejectsWrongKey(t *testing.T) {
	token, err := newTestJWTService().GenerateSessionToken(&models.User{ID: 1, Email: "a@b.co"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different", SessionExp: time.Hour})
	_, err = other.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", SessionExp: -time.Minute})
	token, err := svc.GenerateSessionToken(&models.User{ID: 1, Email: "a@b.co"})
	require.NoError(t, err)

	_, err = svc.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestEmailTokenPurposeMismatch(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateEmailToken("jane@example.com", PurposeResetPassword)
	require.NoError(t, err)

	// A reset token must never verify an email
	_, err = svc.ValidateEmailToken(token, PurposeVerifyEmail)
	assert.ErrorIs(t, err, ErrWrongPurpose)

	claims, err := svc.ValidateEmailToken(token, PurposeResetPassword)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestEmailTokenUnknownPurpose(t *testing.T) {
	_, err := newTestJWTService().GenerateEmailToken("jane@example.com", "delete-account")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
