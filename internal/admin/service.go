package admin

import (
	"errors"
	"time"

	"villabook/internal/shared/config"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("admin: invalid credentials")

// JWTClaims carries the admin identity in issued tokens
type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service authenticates the single configured admin. There is no user
// table: credentials come from the environment, with the password stored
// as a bcrypt hash.
type Service interface {
	Login(username, password string) (string, time.Time, error)
}

type service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{cfg: cfg}
}

func (s *service) Login(username, password string) (string, time.Time, error) {
	if username != s.cfg.Admin.Username {
		// Burn a bcrypt comparison anyway so a wrong username costs the
		// same as a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(password))
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.JWT.JWTExpiresIn)
	claims := JWTClaims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
