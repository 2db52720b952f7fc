package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		wantErr           bool
		want              *Config
		wantErrorContains string
	}{
		{
			name: "valid config file with custom values",
			configContent: `database:
  path: custom/tracker.db
exports:
  notes_directory: custom/notes
  graphs_directory: custom/graphs
  maps_directory: custom/maps
settings:
  file: custom/settings.json
`,
			want: &Config{
				Database: DatabaseConfig{Path: "custom/tracker.db"},
				Exports: ExportsConfig{
					NotesDirectory:  "custom/notes",
					GraphsDirectory: "custom/graphs",
					MapsDirectory:   "custom/maps",
				},
				Settings: SettingsConfig{File: "custom/settings.json"},
			},
		},
		{
			name:          "missing keys fall back to defaults",
			configContent: "exports:\n  notes_directory: only/notes\n",
			want: &Config{
				Database: DatabaseConfig{Path: "learning_tracker.db"},
				Exports: ExportsConfig{
					NotesDirectory:  "only/notes",
					GraphsDirectory: filepath.Join("exports", "graphs"),
					MapsDirectory:   filepath.Join("exports", "maps"),
				},
				Settings: SettingsConfig{File: "settings.json"},
			},
		},
		{
			name:              "invalid YAML format",
			configContent:     "database:\n  path: [unterminated",
			wantErr:           true,
			wantErrorContains: "could not be read",
		},
		{
			name:              "blank database path rejected",
			configContent:     "database:\n  path: \"\"\n",
			wantErr:           true,
			wantErrorContains: "path is a required field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configContent), 0o644))

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)

			got, err := loader.Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("no config file uses all defaults", func(t *testing.T) {
		loader, err := NewConfigLoader("")
		require.NoError(t, err)

		got, err := loader.Load()
		require.NoError(t, err)
		assert.Equal(t, "learning_tracker.db", got.Database.Path)
		assert.Equal(t, "settings.json", got.Settings.File)
	})
}
