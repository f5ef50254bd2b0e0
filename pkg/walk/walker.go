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

package walk

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/fileeditor/pkg/status"
	"github.com/walteh/fileeditor/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files processed at once when Options.Concurrency is unset
const DefaultConcurrency = 16

// 📝 Logger receives one audit line per decision
type Logger interface {
	Log(message string)
}

// 🔧 Options configures a Walker
type Options struct {
	// FS is the filesystem to walk. Defaults to OSFS.
	FS FS
	// Replacer rewrites file content
	Replacer text.Replacer
	// Logger receives UPDATED, SKIPPED and ERROR lines
	Logger Logger
	// Tally counts outcomes. Defaults to a fresh tally.
	Tally *status.Tally
	// Concurrency bounds the number of files read or written at once
	Concurrency int
	// FollowSymlinks resolves symlinks instead of ignoring them
	FollowSymlinks bool
	// Filter limits which files are processed. Nil accepts everything.
	Filter *Filter
	// Skip lists paths that are never touched
	Skip []string
	// OnUpdate is called after a file was rewritten
	OnUpdate func(path, before, after string)
}

// 🚶 Walker rewrites every matching regular file under a directory
type Walker struct {
	opts Options
	skip map[string]struct{}
}

// 🏭 New creates a new walker with the given options
func New(opts Options) (*Walker, error) {
	if opts.Replacer == nil {
		return nil, errors.Errorf("replacer is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.FS == nil {
		opts.FS = OSFS{}
	}
	if opts.Tally == nil {
		opts.Tally = &status.Tally{}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	skip := make(map[string]struct{}, len(opts.Skip))
	for _, p := range opts.Skip {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Errorf("resolving skip path %s: %w", p, err)
		}
		skip[abs] = struct{}{}
	}

	return &Walker{opts: opts, skip: skip}, nil
}

// Tally returns the outcome counters shared by every walk
func (w *Walker) Tally() *status.Tally {
	return w.opts.Tally
}

// 🏃 Walk processes every regular file under root and returns once all of them
// are done. Per entry failures are logged and tallied, not returned; the only
// error is a cancelled context.
func (w *Walker) Walk(ctx context.Context, root string) error {
	t := &traversal{
		Walker:  w,
		ctx:     ctx,
		logger:  zerolog.Ctx(ctx),
		root:    root,
		visited: map[string]struct{}{},
	}
	t.group.SetLimit(w.opts.Concurrency)

	t.logger.Debug().
		Str("root", root).
		Int("concurrency", w.opts.Concurrency).
		Bool("follow_symlinks", w.opts.FollowSymlinks).
		Msg("starting walk")

	t.firstVisit(root)
	t.dir(root)

	// file tasks never fail; errors are reported through the logger
	_ = t.group.Wait()

	if err := ctx.Err(); err != nil {
		return errors.Errorf("walk interrupted: %w", err)
	}
	return nil
}

// traversal is the state of a single Walk call. Directories are read on the
// calling goroutine only, so visited needs no lock.
type traversal struct {
	*Walker
	ctx     context.Context
	logger  *zerolog.Logger
	root    string
	group   errgroup.Group
	visited map[string]struct{}
}

func (t *traversal) dir(path string) {
	entries, err := t.opts.FS.ReadDir(path)
	if err != nil {
		t.fail("ERROR: Unable to scan directory: %v", err)
		return
	}

	for _, e := range entries {
		if t.ctx.Err() != nil {
			return
		}
		t.entry(filepath.Join(path, e.Name()))
	}
}

func (t *traversal) entry(path string) {
	info, err := t.stat(path)
	if err != nil {
		t.fail("ERROR: Unable to stat file/directory: %v", err)
		return
	}

	rel := t.rel(path)

	switch {
	case info.IsDir():
		if t.opts.Filter.SkipDir(rel) {
			t.logger.Debug().Str("path", path).Msg("directory excluded")
			return
		}
		if !t.firstVisit(path) {
			t.logger.Debug().Str("path", path).Msg("directory already visited")
			return
		}
		t.dir(path)

	case info.Mode().IsRegular():
		if t.skipped(path) || !t.opts.Filter.MatchFile(rel) {
			t.logger.Debug().Str("path", path).Msg("file excluded")
			return
		}
		if !t.firstVisit(path) {
			t.logger.Debug().Str("path", path).Msg("file already visited")
			return
		}
		perm := info.Mode().Perm()
		t.group.Go(func() error {
			t.file(path, perm)
			return nil
		})

	default:
		t.logger.Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("ignoring non-regular entry")
	}
}

// file reads, rewrites and writes back a single file
func (t *traversal) file(path string, perm fs.FileMode) {
	data, err := t.opts.FS.ReadFile(path)
	if err != nil {
		t.fail("ERROR: Unable to read file: %s - %v", path, err)
		return
	}

	before := string(data)
	result := t.opts.Replacer.Apply(before)
	if !result.Matched() {
		t.opts.Logger.Log(fmt.Sprintf("SKIPPED: %s (String not found)", path))
		t.opts.Tally.Record(status.OutcomeSkipped)
		return
	}

	if err := t.opts.FS.WriteFile(path, []byte(result.Content), perm); err != nil {
		t.fail("ERROR: Unable to write file: %s - %v", path, err)
		return
	}

	t.opts.Logger.Log(fmt.Sprintf("UPDATED: %s", path))
	t.opts.Tally.Record(status.OutcomeUpdated)
	t.logger.Debug().Str("path", path).Int("matches", result.MatchCount).Msg("file updated")

	if t.opts.OnUpdate != nil {
		t.opts.OnUpdate(path, before, result.Content)
	}
}

func (t *traversal) fail(format string, args ...interface{}) {
	t.opts.Logger.Log(fmt.Sprintf(format, args...))
	t.opts.Tally.Record(status.OutcomeFailed)
}

func (t *traversal) stat(path string) (fs.FileInfo, error) {
	if t.opts.FollowSymlinks {
		return t.opts.FS.Stat(path)
	}
	return t.opts.FS.Lstat(path)
}

// firstVisit records the real path of an entry when following symlinks, so
// link cycles terminate and no file is processed twice.
func (t *traversal) firstVisit(path string) bool {
	if !t.opts.FollowSymlinks {
		return true
	}
	resolved, err := t.opts.FS.EvalSymlinks(path)
	if err != nil {
		return true
	}
	if _, ok := t.visited[resolved]; ok {
		return false
	}
	t.visited[resolved] = struct{}{}
	return true
}

func (t *traversal) skipped(path string) bool {
	if len(t.skip) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, ok := t.skip[abs]
	return ok
}

func (t *traversal) rel(path string) string {
	rel, err := filepath.Rel(t.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
