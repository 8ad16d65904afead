package auth

import (
	"testing"
	"time"

	"inventory/config"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: ttl}}
	cfg.SecretKey.Access = secret

	return cfg
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestJWTService_IssueAndValidate(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	token, err := tokenService.IssueToken("42", []string{"ADMIN", "CUSTOMER"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, []string{"ADMIN", "CUSTOMER"}, claims.Roles)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTService_ValidUntilExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	tokenService, err := NewJWTService(newTestConfig(testSecret, time.Hour), WithClock(clock.Now))
	require.NoError(t, err)

	token, err := tokenService.IssueToken("7", []string{"CUSTOMER"})
	require.NoError(t, err)

	issuedAt := clock.now
	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{name: "at issuance", at: issuedAt, valid: true},
		{name: "half way", at: issuedAt.Add(30 * time.Minute), valid: true},
		{name: "one second before expiry", at: issuedAt.Add(time.Hour - time.Second), valid: true},
		{name: "at expiry", at: issuedAt.Add(time.Hour), valid: false},
		{name: "after expiry", at: issuedAt.Add(2 * time.Hour), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = tt.at

			claims, err := tokenService.ValidateToken(token)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, "7", claims.Subject)
			} else {
				assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
				assert.Nil(t, claims)
			}
		})
	}
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("another_secret_key_that_is_long_enough", time.Hour))
	require.NoError(t, err)
	validator, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	token, err := issuer.IssueToken("1", []string{"ADMIN"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsMalformedToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	claims, err := tokenService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsUnsignedAlgorithm(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(testSecret, time.Hour))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "1",
		"type": "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := tokenService.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("", time.Hour))
	assert.Error(t, err)
	assert.Nil(t, tokenService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestUserIDFromSubject(t *testing.T) {
	id, err := service.UserIDFromSubject(service.SubjectFromUserID(1234))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), id)

	_, err = service.UserIDFromSubject("alice")
	assert.Error(t, err)
}
