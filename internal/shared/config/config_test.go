package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("OBJECT_STORE", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigin)
	assert.True(t, cfg.IsDevLike())
}

func TestLoadNormalizesValues(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("OBJECT_STORE", "S3")

	cfg := Load()
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "s3", cfg.ObjectStoreType)
	assert.False(t, cfg.IsDevLike())
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	cfg := Config{Env: "production", ObjectStoreType: "s3"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "S3_BUCKET")

	cfg = Config{Env: "production", DatabaseURL: "postgres://x", JWTSecret: "s", ObjectStoreType: "local"}
	assert.NoError(t, cfg.Validate())
	assert.NoError(t, Config{Env: "dev"}.Validate())
}
