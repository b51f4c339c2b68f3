package admin

import (
	"testing"
	"time"

	"villabook/internal/shared/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	return &config.Config{
		JWT: config.JWTConfig{
			Secret:       "test-secret",
			JWTExpiresIn: time.Hour,
		},
		Admin: config.AdminConfig{
			Username:     "admin",
			PasswordHash: string(hash),
		},
	}
}

func TestLoginIssuesAdminToken(t *testing.T) {
	svc := NewService(testConfig(t))

	token, expiresAt, err := svc.Login("admin", "correct-horse")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	parsed, err := jwt.ParseWithClaims(token, &JWTClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(*JWTClaims)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(testConfig(t))

	_, _, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("root", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
