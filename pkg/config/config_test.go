// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fileeditor/pkg/text"
)

func ptr[T any](v T) *T { return &v }

func TestLoad(t *testing.T) {
	want := &FileConfig{
		Mode:           "literal",
		Concurrency:    4,
		FollowSymlinks: ptr(true),
		LogDir:         "/var/log/fileeditor",
		Include:        []string{"**/*.go"},
		Exclude:        []string{".git", "vendor"},
		Diff:           ptr(false),
	}

	tests := []struct {
		name     string
		filename string
		config   string
	}{
		{
			name:     "yaml",
			filename: "config.yaml",
			config: `
mode: literal
concurrency: 4
follow_symlinks: true
log_dir: /var/log/fileeditor
include:
  - "**/*.go"
exclude:
  - .git
  - vendor
diff: false
`,
		},
		{
			name:     "yml",
			filename: "config.yml",
			config: `
mode: literal
concurrency: 4
follow_symlinks: true
log_dir: /var/log/fileeditor
include: ["**/*.go"]
exclude: [.git, vendor]
diff: false
`,
		},
		{
			name:     "json",
			filename: "config.json",
			config: `{
  "mode": "literal",
  "concurrency": 4,
  "follow_symlinks": true,
  "log_dir": "/var/log/fileeditor",
  "include": ["**/*.go"],
  "exclude": [".git", "vendor"],
  "diff": false
}`,
		},
		{
			name:     "toml",
			filename: "config.toml",
			config: `
mode = "literal"
concurrency = 4
follow_symlinks = true
log_dir = "/var/log/fileeditor"
include = ["**/*.go"]
exclude = [".git", "vendor"]
diff = false
`,
		},
		{
			name:     "hcl",
			filename: "config.hcl",
			config: `
mode            = "literal"
concurrency     = 4
follow_symlinks = true
log_dir         = "/var/log/fileeditor"
include         = ["**/*.go"]
exclude         = [".git", "vendor"]
diff            = false
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644))

			got, err := Load(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		errContains string
	}{
		{
			name:        "unknown_yaml_field",
			filename:    "config.yaml",
			config:      "colour: red\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "config.json",
			config:      `{"colour": "red"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_toml_field",
			filename:    "config.toml",
			config:      "colour = \"red\"\n",
			errContains: "parsing TOML",
		},
		{
			name:        "bad_hcl",
			filename:    "config.hcl",
			config:      "mode = \n",
			errContains: "parsing HCL",
		},
		{
			name:        "unknown_hcl_attribute",
			filename:    "config.hcl",
			config:      "colour = \"red\"\n",
			errContains: "decoding HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "config.ini",
			config:      "mode=literal",
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644))

			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_EmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, got)
}

func TestHCLParser_HomeVariable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := (&HCLParser{}).Parse(context.Background(), []byte(`log_dir = "${home}/editor-logs"`))
	require.NoError(t, err)
	assert.Equal(t, home+"/editor-logs", got.LogDir)
}

func TestHCLParser_HomeVariableUnresolved(t *testing.T) {
	t.Setenv("HOME", "")

	_, err := (&HCLParser{}).Parse(context.Background(), []byte(`log_dir = "${home}/editor-logs"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding HCL")

	got, err := (&HCLParser{}).Parse(context.Background(), []byte(`log_dir = "/var/log/editor"`))
	require.NoError(t, err)
	assert.Equal(t, "/var/log/editor", got.LogDir)
}

func TestApplyFile(t *testing.T) {
	fc := &FileConfig{
		Mode:           "literal",
		Concurrency:    2,
		FollowSymlinks: ptr(true),
		LogDir:         "/from/file",
		Include:        []string{"*.go"},
		Exclude:        []string{"vendor"},
		Diff:           ptr(true),
	}

	t.Run("file_values_apply", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.ApplyFile(fc, nil))

		assert.Equal(t, text.ModeLiteral, cfg.Mode)
		assert.Equal(t, 2, cfg.Concurrency)
		assert.True(t, cfg.FollowSymlinks)
		assert.Equal(t, "/from/file", cfg.LogDir)
		assert.Equal(t, []string{"*.go"}, cfg.Include)
		assert.Equal(t, []string{"vendor"}, cfg.Exclude)
		assert.True(t, cfg.Diff)
	})

	t.Run("explicit_flags_win", func(t *testing.T) {
		cfg := Default()
		cfg.Concurrency = 8
		cfg.LogDir = "/from/flag"
		changed := map[string]bool{FlagConcurrency: true, FlagLogDir: true, FlagMode: true}

		require.NoError(t, cfg.ApplyFile(fc, func(name string) bool { return changed[name] }))

		assert.Equal(t, text.ModePattern, cfg.Mode)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.Equal(t, "/from/flag", cfg.LogDir)
		assert.True(t, cfg.FollowSymlinks)
	})

	t.Run("nil_file", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.ApplyFile(nil, nil))
		assert.Equal(t, Default(), cfg)
	})

	t.Run("bad_mode", func(t *testing.T) {
		cfg := Default()
		err := cfg.ApplyFile(&FileConfig{Mode: "fuzzy"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown match mode")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Directory = "/tmp/t"
		cfg.Search = "hello"
		cfg.Replace = "hi"
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		errContains string
	}{
		{
			name:   "valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:   "valid_literal_with_metacharacters",
			mutate: func(cfg *Config) { cfg.Mode = text.ModeLiteral; cfg.Search = "(" },
		},
		{
			name:        "missing_directory",
			mutate:      func(cfg *Config) { cfg.Directory = "" },
			errContains: "directory is required",
		},
		{
			name:        "missing_search",
			mutate:      func(cfg *Config) { cfg.Search = "" },
			errContains: "search string is required",
		},
		{
			name:        "missing_replace",
			mutate:      func(cfg *Config) { cfg.Replace = "" },
			errContains: "replace string is required",
		},
		{
			name:        "bad_mode",
			mutate:      func(cfg *Config) { cfg.Mode = "fuzzy" },
			errContains: "unknown match mode",
		},
		{
			name:        "bad_concurrency",
			mutate:      func(cfg *Config) { cfg.Concurrency = 0 },
			errContains: "concurrency must be at least 1",
		},
		{
			name:        "bad_glob",
			mutate:      func(cfg *Config) { cfg.Exclude = []string{"[a"} },
			errContains: "invalid glob pattern",
		},
		{
			name:        "bad_pattern",
			mutate:      func(cfg *Config) { cfg.Search = "(" },
			errContains: "invalid search",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	assert.Equal(t, text.ModePattern, cfg.Mode)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, filepath.Join(home, "logs"), cfg.LogDir)
	assert.Equal(t, filepath.Join(home, ".fileeditor", "config.yaml"), DefaultConfigPath())
}

func TestConfigString(t *testing.T) {
	cfg := &Config{Directory: "/tmp/t", Search: "a.b", Replace: "c", Mode: text.ModeLiteral}
	assert.Equal(t, `/tmp/t: "a.b" -> "c" (literal)`, cfg.String())
}
