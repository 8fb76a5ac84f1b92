package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("MINIO_BUCKET", "")
	t.Setenv("ENVIRONMENT", "")

	cfg := Load()
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, "blog-attachments", cfg.MinIOBucket)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	assert.Equal(t, 40, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.JWTAccessExpiry)
	assert.True(t, cfg.MinIOUseSSL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("JWT_REFRESH_EXPIRY", "forever")

	cfg := Load()
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTRefreshExpiry)
}

func TestGetListEnv(t *testing.T) {
	t.Setenv("ALLOWED_EMAIL_DOMAINS", " LSTech.io, ,example.com ")
	assert.Equal(t, []string{"lstech.io", "example.com"}, getListEnv("ALLOWED_EMAIL_DOMAINS"))

	t.Setenv("ALLOWED_EMAIL_DOMAINS", "")
	assert.Empty(t, getListEnv("ALLOWED_EMAIL_DOMAINS"))
}

func TestPublicReadPolicy_ScopedToPrefix(t *testing.T) {
	raw, err := json.Marshal(publicReadPolicy("blog-attachments", AttachmentPrefix))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	stmts := decoded["Statement"].([]any)
	require.Len(t, stmts, 1)
	stmt := stmts[0].(map[string]any)
	assert.Equal(t, "Allow", stmt["Effect"])
	assert.Equal(t, []any{"arn:aws:s3:::blog-attachments/attachments/*"}, stmt["Resource"])
}

func TestNewPostgresDB_RequiresURL(t *testing.T) {
	_, err := NewPostgresDB(&Config{})
	assert.Error(t, err)
}
