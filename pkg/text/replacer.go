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

package text

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔀 Mode selects how the search string is interpreted
type Mode string

const (
	// ModeLiteral matches the search string verbatim
	ModeLiteral Mode = "literal"
	// ModePattern treats the search string as a regular expression
	ModePattern Mode = "pattern"
)

// DefaultMode is pattern matching, so metacharacters in the search string
// keep their regular expression meaning.
const DefaultMode = ModePattern

// ErrEmptySearch is returned when the search string is empty
var ErrEmptySearch = errors.New("search string is required")

// 🔍 ParseMode converts a user supplied mode name into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMode, nil
	case ModeLiteral:
		return ModeLiteral, nil
	case ModePattern:
		return ModePattern, nil
	default:
		return "", errors.Errorf("unknown match mode %q (want %q or %q)", s, ModeLiteral, ModePattern)
	}
}

// 📦 Result is the outcome of applying a replacer to some content
type Result struct {
	// Content is the content after every match was replaced
	Content string

	// MatchCount is the number of non-overlapping matches that were replaced
	MatchCount int
}

// Matched reports whether anything was replaced
func (r Result) Matched() bool {
	return r.MatchCount > 0
}

// 🎯 Replacer replaces every occurrence of a search string in some content.
// Implementations are pure and safe for concurrent use.
type Replacer interface {
	// Apply returns the replaced content and the number of matches
	Apply(content string) Result

	// Mode reports how the search string is interpreted
	Mode() Mode
}

// 🏭 New builds a Replacer for the given mode
func New(mode Mode, search, replacement string) (Replacer, error) {
	if search == "" {
		return nil, ErrEmptySearch
	}

	switch mode {
	case ModeLiteral:
		return NewLiteralReplacer(search, replacement), nil
	case ModePattern, "":
		r, err := NewPatternReplacer(search, replacement)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, errors.Errorf("unknown match mode %q", mode)
	}
}

// Apply is the one-shot form of New followed by Replacer.Apply
func Apply(mode Mode, content, search, replacement string) (Result, error) {
	r, err := New(mode, search, replacement)
	if err != nil {
		return Result{}, err
	}
	return r.Apply(content), nil
}
