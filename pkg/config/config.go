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
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/fileeditor/pkg/log"
	"github.com/walteh/fileeditor/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultConcurrency is the default number of files processed at once
const DefaultConcurrency = 16

// Flag names shared by the CLI and ApplyFile
const (
	FlagMode           = "mode"
	FlagConcurrency    = "concurrency"
	FlagFollowSymlinks = "follow-symlinks"
	FlagLogDir         = "log-dir"
	FlagInclude        = "include"
	FlagExclude        = "exclude"
	FlagDiff           = "diff"
)

// 📚 Config is the complete, resolved configuration of a run
type Config struct {
	Directory string    // root of the tree to edit
	Search    string    // search string or expression
	Replace   string    // replacement string
	Mode      text.Mode // how Search is interpreted

	Concurrency    int      // files processed at once
	FollowSymlinks bool     // follow symlinks with a visited set guard
	LogDir         string   // directory of the daily log file, "" for console only
	Include        []string // globs a file must match
	Exclude        []string // globs that exclude files and directories
	Diff           bool     // print a diff for every updated file
}

// 🏭 Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Mode:        text.DefaultMode,
		Concurrency: DefaultConcurrency,
		LogDir:      log.DefaultDir(),
	}
}

// 🔄 ApplyFile copies values from a config file into cfg. Values whose flag
// was set explicitly on the command line win over the file.
func (cfg *Config) ApplyFile(fc *FileConfig, changed func(flag string) bool) error {
	if fc == nil {
		return nil
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if fc.Mode != "" && !changed(FlagMode) {
		mode, err := text.ParseMode(fc.Mode)
		if err != nil {
			return errors.Errorf("config mode: %w", err)
		}
		cfg.Mode = mode
	}
	if fc.Concurrency != 0 && !changed(FlagConcurrency) {
		cfg.Concurrency = fc.Concurrency
	}
	if fc.FollowSymlinks != nil && !changed(FlagFollowSymlinks) {
		cfg.FollowSymlinks = *fc.FollowSymlinks
	}
	if fc.LogDir != "" && !changed(FlagLogDir) {
		cfg.LogDir = fc.LogDir
	}
	if len(fc.Include) > 0 && !changed(FlagInclude) {
		cfg.Include = fc.Include
	}
	if len(fc.Exclude) > 0 && !changed(FlagExclude) {
		cfg.Exclude = fc.Exclude
	}
	if fc.Diff != nil && !changed(FlagDiff) {
		cfg.Diff = *fc.Diff
	}

	return nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Directory == "" {
		return errors.Errorf("directory is required")
	}
	if cfg.Search == "" {
		return errors.Errorf("search string is required")
	}
	if cfg.Replace == "" {
		return errors.Errorf("replace string is required")
	}

	mode, err := text.ParseMode(string(cfg.Mode))
	if err != nil {
		return err
	}
	cfg.Mode = mode

	if cfg.Concurrency < 1 {
		return errors.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	for _, p := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid glob pattern %q", p)
		}
	}

	if _, err := text.New(cfg.Mode, cfg.Search, cfg.Replace); err != nil {
		return errors.Errorf("invalid search: %w", err)
	}

	if cfg.LogDir != "" {
		cfg.LogDir = filepath.Clean(cfg.LogDir)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s: %q -> %q (%s)", cfg.Directory, cfg.Search, cfg.Replace, cfg.Mode)
}
