package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"carmarket/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "alice@example.com", model.RoleAdmin)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(uuid.New(), "alice@example.com", model.RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(uuid.New(), "alice@example.com", model.RoleUser)
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestAccessTokensCarryUniqueIDs(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	first, err := svc.GenerateAccessToken(userID, "alice@example.com", model.RoleUser)
	assert.NoError(t, err)
	second, err := svc.GenerateAccessToken(userID, "alice@example.com", model.RoleUser)
	assert.NoError(t, err)

	firstID, err := svc.ExtractTokenID(first)
	assert.NoError(t, err)
	secondID, err := svc.ExtractTokenID(second)
	assert.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)
}

func TestExtractTokenIDRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, err := svc.ExtractTokenID("not-a-token")
	assert.Error(t, err)
}
