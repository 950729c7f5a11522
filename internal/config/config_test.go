package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig_RejectsBadExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	t.Setenv("JWT_EXPIRATION_HOURS", "abc")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_CostRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "9")
	_, err := NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "15")
	_, err = NewPasswordConfig()
	assert.Error(t, err)
}

func TestPassword_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
}

func TestPassword_PepperChangesHash(t *testing.T) {
	plain := &PasswordConfig{BcryptCost: 10}
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "global-secret"}

	hash, err := peppered.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("correct horse", hash))
	// Without the pepper the same password no longer verifies.
	assert.False(t, plain.VerifyPassword("correct horse", hash))
}
