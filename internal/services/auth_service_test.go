package services_test

import (
	"testing"
	"time"

	"simak/internal/models"
	"simak/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	svc, err := services.NewAuthService("admin123", "user123", "test_secret")
	require.NoError(t, err)
	return svc
}

func TestAuthService_LoginAdmin(t *testing.T) {
	svc := newAuthService(t)

	token, role, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestAuthService_LoginUser(t *testing.T) {
	svc := newAuthService(t)

	token, role, err := svc.Login("user", "user123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, role)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Login("admin", "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid credentials")
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Login("root", "admin123")
	require.Error(t, err)
	// same message as a wrong password so usernames cannot be probed
	assert.EqualError(t, err, "invalid credentials")
}

func TestAuthService_TokenCarriesUsernameAndRole(t *testing.T) {
	svc := newAuthService(t)

	token, _, err := svc.Login("admin", "admin123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])
	assert.Equal(t, models.RoleAdmin, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, exp, float64(time.Now().Unix()))
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthService_ValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newAuthService(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"role":     models.RoleAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("other_secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestAuthService_ValidateTokenRejectsExpired(t *testing.T) {
	svc := newAuthService(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"role":     models.RoleAdmin,
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("test_secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}
