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

package log

import (
	"os"
	"path/filepath"
	"time"

	"gitlab.com/tozd/go/errors"
)

// DailyPath returns <dir>/editor-<YYYY-MM-DD>.log for the UTC date of t
func DailyPath(dir string, t time.Time) string {
	return filepath.Join(dir, "editor-"+t.UTC().Format("2006-01-02")+".log")
}

// DefaultDir returns ~/logs, or "" if the home directory cannot be resolved
func DefaultDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, "logs")
	}
	return ""
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}
