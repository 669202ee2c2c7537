package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(7, "anna@example.com", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	_, err := ValidateJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("first-secret")
	token, err := GenerateJWT(1, "user@example.com", models.RoleUser)
	require.NoError(t, err)

	InitJWT("second-secret")
	_, err = ValidateJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
