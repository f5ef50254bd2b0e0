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
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// TimestampFormat is ISO-8601 with millisecond precision, always rendered in UTC
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// 📝 Entry is a single audit line
type Entry struct {
	Time    time.Time
	Message string
}

// String renders the entry as "[<timestamp>] <message>"
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.UTC().Format(TimestampFormat), e.Message)
}

// 🔧 Options configures a Logger
type Options struct {
	// Dir is the directory holding the daily log files. Empty disables the file sink.
	Dir string

	// Now stamps entries. Defaults to time.Now.
	Now func() time.Time

	// Errors receives reports about file sink failures. Defaults to os.Stderr.
	Errors io.Writer

	// Color enables keyword colouring on the console
	Color bool

	// Diagnostics receives a debug level copy of every entry
	Diagnostics *zerolog.Logger
}

// 🎯 Logger writes audit lines to a console and appends them to a dated log file.
// File logging is best effort; the console is the source of truth.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	errs    io.Writer
	file    *os.File
	path    string
	now     func() time.Time
	color   bool
	zlog    zerolog.Logger
}

// 🏭 New creates a logger. The daily log file is resolved and opened once, here.
func New(console io.Writer, opts Options) *Logger {
	l := &Logger{
		console: console,
		errs:    opts.Errors,
		now:     opts.Now,
		color:   opts.Color,
		zlog:    zerolog.Nop(),
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.errs == nil {
		l.errs = os.Stderr
	}
	if opts.Diagnostics != nil {
		l.zlog = *opts.Diagnostics
	}

	if opts.Dir != "" {
		l.path = DailyPath(opts.Dir, l.now())
		file, err := openAppend(l.path)
		if err != nil {
			fmt.Fprintf(l.errs, "Failed to open log file: %v\n", err)
		} else {
			l.file = file
		}
	}

	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Path returns the active log file, or "" when only the console is used
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.path
}

// 📝 Log stamps message with the current time, prints it and appends it to the log file.
// Lines from concurrent callers never interleave, but their order follows call order
// into the mutex, not the order in which the work they describe was started.
func (l *Logger) Log(message string) {
	entry := Entry{Time: l.now(), Message: message}
	line := entry.String()

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.colorize(entry))

	if l.file != nil {
		if _, err := io.WriteString(l.file, line+"\n"); err != nil {
			fmt.Fprintf(l.errs, "Failed to write to log file: %v\n", err)
		}
	}

	l.zlog.Debug().Time("at", entry.Time).Msg(message)
}

// 📝 Logf logs a formatted message
func (l *Logger) Logf(format string, args ...interface{}) {
	l.Log(fmt.Sprintf(format, args...))
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

var keywordColors = []struct {
	prefix string
	attr   color.Attribute
}{
	{"UPDATED:", color.FgGreen},
	{"SKIPPED:", color.FgYellow},
	{"ERROR:", color.FgRed},
}

// colorize highlights the leading keyword of the message for the console
func (l *Logger) colorize(e Entry) string {
	if !l.color {
		return e.String()
	}
	for _, kc := range keywordColors {
		if strings.HasPrefix(e.Message, kc.prefix) {
			stamp := color.New(color.Faint).Sprintf("[%s]", e.Time.UTC().Format(TimestampFormat))
			keyword := color.New(kc.attr, color.Bold).Sprint(kc.prefix)
			return stamp + " " + keyword + strings.TrimPrefix(e.Message, kc.prefix)
		}
	}
	return e.String()
}
