package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTranslations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "id"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en", messagesFile), []byte("MESSAGES:\n  LIKED: \"Liked\"\n  GREETING: \"Hello %s\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "id", messagesFile), []byte("MESSAGES:\n  LIKED: \"Disukai\"\n"), 0o644))

	require.NoError(t, LoadTranslations(dir))

	t.Run("exact locale", func(t *testing.T) {
		assert.Equal(t, "Disukai", Translate("id", "LIKED"))
	})

	t.Run("falls back to english", func(t *testing.T) {
		assert.Equal(t, "Hello %s", Translate("id", "GREETING"))
		assert.Equal(t, "Hello Ada", Translatef("id", "GREETING", "Ada"))
	})

	t.Run("unknown key returns key", func(t *testing.T) {
		assert.Equal(t, "MISSING", Translate("en", "MISSING"))
	})
}

func TestLoadTranslations_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en", messagesFile), []byte("MESSAGES: [unclosed"), 0o644))

	assert.Error(t, LoadTranslations(dir))
}
