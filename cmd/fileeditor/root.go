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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/fileeditor/pkg/config"
	"github.com/walteh/fileeditor/pkg/log"
	"github.com/walteh/fileeditor/pkg/operation"
	"github.com/walteh/fileeditor/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const usageLine = "Usage: fileeditor <directory> <searchPattern> <replaceString>"

// Exit codes
const (
	exitOK     = 0
	exitUsage  = 1
	exitFailed = 2
)

var errUsage = errors.New("invalid arguments")

// rootOpts holds the flag values and the result of a run
type rootOpts struct {
	cfg        *config.Config
	configFile string
	debug      bool
	noColor    bool

	stdout  io.Writer
	stderr  io.Writer
	summary status.Summary
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOpts{cfg: config.Default(), stdout: stdout, stderr: stderr}

	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usageLine)
			return exitUsage
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.summary.HasErrors() {
		return exitFailed
	}
	return exitOK
}

func newRootCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileeditor [flags] <directory> <searchPattern> <replaceString>",
		Example: `  fileeditor ./src hello hi
  fileeditor --mode literal -j 4 ./src '$1.00' '$2.00'
  fileeditor ./src -1 one`,
		Short: "Search and replace across every file in a directory tree",
		Long: `fileeditor walks a directory recursively and rewrites every regular file
whose content matches the search pattern, logging each decision to the console
and to a dated log file.`,
		Version:       GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          validateArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd.Context(), opts))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}
	cmd.SetVersionTemplate(versionTemplate())
	addRootFlags(cmd.Flags(), opts)
	// flags go before <directory>; everything after it is positional, so a
	// search or replace string may start with "-"
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// addRootFlags binds the run flags to opts
func addRootFlags(flags *pflag.FlagSet, opts *rootOpts) {
	flags.StringVar((*string)(&opts.cfg.Mode), config.FlagMode, string(opts.cfg.Mode), "match mode: pattern or literal")
	flags.IntVarP(&opts.cfg.Concurrency, config.FlagConcurrency, "j", opts.cfg.Concurrency, "number of files processed at once")
	flags.BoolVar(&opts.cfg.FollowSymlinks, config.FlagFollowSymlinks, false, "follow symbolic links")
	flags.StringVar(&opts.cfg.LogDir, config.FlagLogDir, opts.cfg.LogDir, "directory for the daily log file")
	flags.StringSliceVar(&opts.cfg.Include, config.FlagInclude, nil, "only edit files matching these globs")
	flags.StringSliceVar(&opts.cfg.Exclude, config.FlagExclude, nil, "skip files and directories matching these globs")
	flags.BoolVar(&opts.cfg.Diff, config.FlagDiff, false, "print a diff for every updated file")
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file path (default ~/.fileeditor/config.yaml if present)")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
}

// validateArgs requires exactly three non-empty positional arguments
func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	for _, a := range args {
		if a == "" {
			return errUsage
		}
	}
	return nil
}

// setupLogging attaches a diagnostic zerolog logger to ctx
func setupLogging(ctx context.Context, opts *rootOpts) context.Context {
	level := zerolog.InfoLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: opts.stderr, NoColor: opts.noColor}).
		Level(level).
		With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

func (o *rootOpts) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := o.cfg
	cfg.Directory, cfg.Search, cfg.Replace = args[0], args[1], args[2]

	if err := o.applyConfigFile(ctx, cmd); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("invalid configuration: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("resolved configuration")

	diag := zerolog.Ctx(ctx)
	logger := log.New(o.stdout, log.Options{
		Dir:         cfg.LogDir,
		Errors:      o.stderr,
		Color:       !o.noColor && !color.NoColor,
		Diagnostics: diag,
	})
	defer logger.Close()
	ctx = log.NewContext(ctx, logger)

	editor, err := operation.New(operation.Options{Config: cfg, DiffOutput: o.stdout})
	if err != nil {
		return errors.Errorf("creating editor: %w", err)
	}

	summary, err := editor.Run(ctx)
	o.summary = summary
	if err != nil {
		return err
	}

	return status.Render(o.stdout, summary)
}

// applyConfigFile merges the config file into the flag values. An explicit
// --config must exist; the default path is used only when present.
func (o *rootOpts) applyConfigFile(ctx context.Context, cmd *cobra.Command) error {
	path := o.configFile
	if path == "" {
		path = config.DefaultConfigPath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no default config file")
			return nil
		}
	}

	fc, err := config.Load(ctx, path)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loaded config file")

	return o.cfg.ApplyFile(fc, cmd.Flags().Changed)
}
