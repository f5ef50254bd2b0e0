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

package operation

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/fileeditor/pkg/config"
	"github.com/walteh/fileeditor/pkg/log"
	"github.com/walteh/fileeditor/pkg/status"
	"github.com/walteh/fileeditor/pkg/text"
	"github.com/walteh/fileeditor/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the editor
type Options struct {
	// Config is the resolved run configuration
	Config *config.Config
	// Logger receives the audit lines. Defaults to the logger carried by the context.
	Logger *log.Logger
	// FS is the filesystem to edit. Defaults to the host filesystem.
	FS walk.FS
	// DiffOutput receives per file diffs when Config.Diff is set. Defaults to os.Stdout.
	DiffOutput io.Writer
}

// ✏️ Editor performs one search and replace run
type Editor struct {
	config     *config.Config
	logger     *log.Logger
	fs         walk.FS
	diffOutput io.Writer
	diffMu     sync.Mutex
}

// 🏭 New creates a new editor with the given options
func New(opts Options) (*Editor, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	if opts.FS == nil {
		opts.FS = walk.OSFS{}
	}
	if opts.DiffOutput == nil {
		opts.DiffOutput = os.Stdout
	}

	return &Editor{
		config:     opts.Config,
		logger:     opts.Logger,
		fs:         opts.FS,
		diffOutput: opts.DiffOutput,
	}, nil
}

// 🏃 Run logs the banner, walks the tree and logs the final tally. Per file
// failures are part of the summary; the error is only set when the run could
// not complete.
func (e *Editor) Run(ctx context.Context) (status.Summary, error) {
	logger := e.logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}
	cfg := e.config

	logger.Log("Starting fileeditor...")
	logger.Logf("Directory: %s", cfg.Directory)
	logger.Logf("Search String: %s", cfg.Search)
	logger.Logf("Replace String: %s", cfg.Replace)
	logger.Logf("Match Mode: %s", cfg.Mode)

	replacer, err := text.New(cfg.Mode, cfg.Search, cfg.Replace)
	if err != nil {
		return status.Summary{}, errors.Errorf("creating replacer: %w", err)
	}

	var filter *walk.Filter
	if len(cfg.Include) > 0 || len(cfg.Exclude) > 0 {
		filter, err = walk.NewFilter(cfg.Include, cfg.Exclude)
		if err != nil {
			return status.Summary{}, errors.Errorf("creating filter: %w", err)
		}
	}

	walkOpts := walk.Options{
		FS:             e.fs,
		Replacer:       replacer,
		Logger:         logger,
		Concurrency:    cfg.Concurrency,
		FollowSymlinks: cfg.FollowSymlinks,
		Filter:         filter,
		Skip:           []string{logger.Path()},
	}
	if cfg.Diff {
		walkOpts.OnUpdate = e.printDiff
	}

	walker, err := walk.New(walkOpts)
	if err != nil {
		return status.Summary{}, errors.Errorf("creating walker: %w", err)
	}

	walkErr := walker.Walk(ctx, cfg.Directory)

	summary := walker.Tally().Summary()
	logger.Logf("Finished: %s", summary)

	zerolog.Ctx(ctx).Debug().
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Int("errors", summary.Errors).
		Msg("run complete")

	if walkErr != nil {
		return summary, errors.Errorf("walking %s: %w", cfg.Directory, walkErr)
	}
	return summary, nil
}

func (e *Editor) printDiff(path, before, after string) {
	e.diffMu.Lock()
	defer e.diffMu.Unlock()
	fmt.Fprintf(e.diffOutput, "--- %s\n%s\n", path, text.Diff(before, after))
}
