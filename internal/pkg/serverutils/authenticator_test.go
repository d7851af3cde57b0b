package serverutils

import (
	"encoding/base64"
	"testing"

	"farewell-wall-be/internal/config"
	"farewell-wall-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticTokenRoundTrip(t *testing.T) {
	auth := NewAuthenticator(config.AdminConfig{Password: "admin123", AuthScheme: "static"})

	token, expiresIn, err := auth.IssueToken("admin123")
	assert.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("admin123")), token)
	assert.Equal(t, "24h", expiresIn)

	assert.NoError(t, auth.ValidateToken(token))
}

func TestStaticTokenRejections(t *testing.T) {
	auth := NewAuthenticator(config.AdminConfig{Password: "admin123", AuthScheme: "static"})

	_, _, err := auth.IssueToken("wrong")
	assert.True(t, apperror.IsKind(err, apperror.KindAuth))

	_, _, err = auth.IssueToken("")
	assert.True(t, apperror.IsKind(err, apperror.KindAuth))

	// Valid base64, wrong secret.
	bad := base64.StdEncoding.EncodeToString([]byte("not-the-secret"))
	assert.True(t, apperror.IsKind(auth.ValidateToken(bad), apperror.KindAuth))

	// Not base64 at all.
	assert.True(t, apperror.IsKind(auth.ValidateToken("%%%"), apperror.KindAuth))
}

func TestStaticTokenEmptyConfiguredSecret(t *testing.T) {
	// No configured secret means nobody can log in, even with an empty
	// password.
	auth := NewAuthenticator(config.AdminConfig{AuthScheme: "static"})

	_, _, err := auth.IssueToken("anything")
	assert.True(t, apperror.IsKind(err, apperror.KindAuth))
}

func TestBcryptSecretTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)

	auth := NewAuthenticator(config.AdminConfig{
		Password:       "ignored-plain",
		PasswordBcrypt: string(hash),
		AuthScheme:     "static",
	})

	_, _, err = auth.IssueToken("hunter2")
	assert.NoError(t, err)

	_, _, err = auth.IssueToken("ignored-plain")
	assert.True(t, apperror.IsKind(err, apperror.KindAuth))
}

func TestJwtSchemeRoundTrip(t *testing.T) {
	auth := NewAuthenticator(config.AdminConfig{
		Password:   "admin123",
		AuthScheme: "jwt",
		JwtSecret:  "test-signing-key",
	})
	assert.IsType(t, &JwtAuthenticator{}, auth)

	token, expiresIn, err := auth.IssueToken("admin123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "24h", expiresIn)

	assert.NoError(t, auth.ValidateToken(token))
	assert.True(t, apperror.IsKind(auth.ValidateToken(token+"x"), apperror.KindAuth))
	assert.True(t, apperror.IsKind(auth.ValidateToken("garbage"), apperror.KindAuth))
}
