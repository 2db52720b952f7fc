package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields all defaults", func(t *testing.T) {
		store, err := Load(filepath.Join(t.TempDir(), "settings.json"))
		require.NoError(t, err)

		assert.Equal(t, "Learning Enthusiast", store.GetString("username"))
		assert.Equal(t, "superhero", store.GetString("theme"))
		assert.Equal(t, 25, store.GetInt("default_study_duration"))
		assert.Equal(t, 5, store.GetInt("break_duration"))
		assert.True(t, store.GetBool("track_mood"))
		assert.False(t, store.GetBool("start_maximized"))
		assert.Len(t, store.All(), len(Defaults()))
	})

	t.Run("file values override defaults, missing keys fall back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		content := `{"username": "Ada", "font_size": 16, "custom_plugin_key": "kept"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "Ada", store.GetString("username"))
		assert.Equal(t, 16, store.GetInt("font_size"))
		// Keys absent from the file fall back to defaults.
		assert.Equal(t, "English", store.GetString("language"))
		// Unknown keys survive the merge.
		assert.Equal(t, "kept", store.GetString("custom_plugin_key"))
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	content := `{"theme": "darkly", "custom_plugin_key": "kept"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store, err := Load(path)
	require.NoError(t, err)
	store.Set("username", "Grace")

	require.NoError(t, store.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, json.Unmarshal(data, &saved))

	// Saved document carries overrides, file values, unknown keys, and
	// defaults for everything else.
	assert.Equal(t, "Grace", saved["username"])
	assert.Equal(t, "darkly", saved["theme"])
	assert.Equal(t, "kept", saved["custom_plugin_key"])
	assert.Equal(t, "General", saved["default_category"])
	assert.Len(t, saved, len(Defaults())+1)

	t.Run("round-trip is stable", func(t *testing.T) {
		again, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Grace", again.GetString("username"))
		assert.Equal(t, "kept", again.GetString("custom_plugin_key"))
	})

	t.Run("save creates parent directories", func(t *testing.T) {
		nested := filepath.Join(dir, "a", "b", "settings.json")
		store, err := Load(nested)
		require.NoError(t, err)
		require.NoError(t, store.Save())
		assert.FileExists(t, nested)
	})
}
