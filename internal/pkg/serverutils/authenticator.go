package serverutils

import (
	"crypto/subtle"
	"encoding/base64"
	"time"

	"farewell-wall-be/internal/config"
	"farewell-wall-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator abstracts the admin credential check so the static-secret
// scheme can later be swapped for a real token scheme without touching
// callers.
type Authenticator interface {
	// IssueToken validates the shared secret and returns a bearer token
	// plus a client-facing expiry hint.
	IssueToken(password string) (token string, expiresIn string, err error)
	// ValidateToken checks a bearer token previously issued by IssueToken.
	ValidateToken(token string) error
}

func NewAuthenticator(cfg config.AdminConfig) Authenticator {
	if cfg.AuthScheme == "jwt" {
		return &JwtAuthenticator{cfg: cfg}
	}
	return &StaticTokenAuthenticator{cfg: cfg}
}

// StaticTokenAuthenticator implements the original scheme: the token is the
// base64 of the shared secret, no server-side expiry.
type StaticTokenAuthenticator struct {
	cfg config.AdminConfig
}

func (a *StaticTokenAuthenticator) IssueToken(password string) (string, string, error) {
	if err := checkSecret(a.cfg, password); err != nil {
		return "", "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(password)), "24h", nil
}

func (a *StaticTokenAuthenticator) ValidateToken(token string) error {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return apperror.NewAuth("invalid token")
	}
	return checkSecret(a.cfg, string(decoded))
}

// JwtAuthenticator issues a signed token instead of the raw secret. Enabled
// with AUTH_SCHEME=jwt.
type JwtAuthenticator struct {
	cfg config.AdminConfig
}

func (a *JwtAuthenticator) IssueToken(password string) (string, string, error) {
	if err := checkSecret(a.cfg, password); err != nil {
		return "", "", err
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(a.cfg.JwtSecret))
	if err != nil {
		return "", "", apperror.NewAuth("could not issue token")
	}
	return token, "24h", nil
}

func (a *JwtAuthenticator) ValidateToken(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.cfg.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return apperror.NewAuth("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		return apperror.NewAuth("invalid claims")
	}
	return nil
}

func checkSecret(cfg config.AdminConfig, password string) error {
	if password == "" {
		return apperror.NewAuth("password required")
	}

	if cfg.PasswordBcrypt != "" {
		if bcrypt.CompareHashAndPassword([]byte(cfg.PasswordBcrypt), []byte(password)) != nil {
			return apperror.NewAuth("invalid password")
		}
		return nil
	}

	if cfg.Password == "" ||
		subtle.ConstantTimeCompare([]byte(cfg.Password), []byte(password)) != 1 {
		return apperror.NewAuth("invalid password")
	}
	return nil
}
