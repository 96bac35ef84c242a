package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/repolens/schema"
)

func TestProcessAndValidate(t *testing.T) {
	workDir := t.TempDir()

	tests := []struct {
		name        string
		input       *ConfigRawInput
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name:  "valid minimal config",
			input: &ConfigRawInput{Output: "json", WorkDir: workDir},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.JSONOut, cfg.Output)
				assert.Equal(t, workDir, cfg.WorkDir)
			},
		},
		{
			name:  "empty output defaults to json",
			input: &ConfigRawInput{WorkDir: workDir},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.JSONOut, cfg.Output)
			},
		},
		{
			name:  "output format is case insensitive",
			input: &ConfigRawInput{Output: "YAML", WorkDir: workDir},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.YAMLOut, cfg.Output)
			},
		},
		{
			name:        "invalid output format",
			input:       &ConfigRawInput{Output: "xml", WorkDir: workDir},
			expectError: true,
		},
		{
			name:  "token is trimmed",
			input: &ConfigRawInput{Output: "json", WorkDir: workDir, Token: "  ghp_abc  "},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ghp_abc", cfg.Token)
			},
		},
		{
			name:  "empty workdir gets a default under tmp",
			input: &ConfigRawInput{Output: "json"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultWorkDirName, filepath.Base(cfg.WorkDir))
				assert.DirExists(t, cfg.WorkDir)
			},
		},
		{
			name:  "run-db none disables tracking",
			input: &ConfigRawInput{Output: "json", WorkDir: workDir, RunDB: "none"},
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.RunDBPath)
			},
		},
		{
			name:  "run-db explicit path",
			input: &ConfigRawInput{Output: "json", WorkDir: workDir, RunDB: "/tmp/runs.db"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/runs.db", cfg.RunDBPath)
			},
		},
		{
			name:  "run-db empty defaults to home",
			input: &ConfigRawInput{Output: "json", WorkDir: workDir},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, GetRunDBFilePath(), cfg.RunDBPath)
				assert.Equal(t, DefaultRunDBName, filepath.Base(cfg.RunDBPath))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := ProcessAndValidate(cfg, tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path means stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Same(t, os.Stdout, f)
	})

	t.Run("path creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, path, f.Name())
	})
}
