package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/contracts")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Nil(t, cfg.Contracts.AllowedTypes)
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DSN", "postgres://localhost/contracts")
	t.Setenv("JWT_ACCESS_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadAllowedTypes(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/contracts")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CONTRACT_ALLOWED_TYPES", "Empreitada Global, Administração ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Empreitada Global", "Administração"}, cfg.Contracts.AllowedTypes)
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList("  "))
	assert.Equal(t, []string{"a", "b"}, parseList(" a , b "))
}
