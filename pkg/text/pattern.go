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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// PatternReplacer implements Replacer with a regular expression.
//
// The replacement string understands these references:
//
//	$$       a literal "$"
//	$&       the whole match
//	$`       the text before the match
//	$'       the text after the match
//	$1..$99  a numbered capture group
//	$<name>  a named capture group
//
// Anything else after a "$" is copied through unchanged.
//
// Matches follow Go's RE2 rules: an empty match directly after a previous
// match is not reported, so "baaac" with `a*` and "-" gives "-b-c-" where a
// JavaScript global replace gives "-b--c-".
type PatternReplacer struct {
	re   *regexp.Regexp
	tmpl template
}

// NewPatternReplacer compiles pattern and parses the replacement template
func NewPatternReplacer(pattern, replacement string) (*PatternReplacer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", pattern, err)
	}

	return &PatternReplacer{
		re:   re,
		tmpl: parseTemplate(replacement, re),
	}, nil
}

// Apply implements Replacer.Apply
func (r *PatternReplacer) Apply(content string) Result {
	matches := r.re.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return Result{Content: content}
	}

	var b strings.Builder
	b.Grow(len(content))

	last := 0
	for _, m := range matches {
		b.WriteString(content[last:m[0]])
		r.tmpl.expand(&b, content, m)
		last = m[1]
	}
	b.WriteString(content[last:])

	return Result{
		Content:    b.String(),
		MatchCount: len(matches),
	}
}

// Mode implements Replacer.Mode
func (r *PatternReplacer) Mode() Mode {
	return ModePattern
}

// String returns the compiled expression
func (r *PatternReplacer) String() string {
	return r.re.String()
}

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentGroup
	segmentBefore
	segmentAfter
)

type segment struct {
	kind  segmentKind
	text  string
	group int // -1 expands to nothing
}

type template []segment

func (t template) expand(b *strings.Builder, content string, m []int) {
	for _, seg := range t {
		switch seg.kind {
		case segmentLiteral:
			b.WriteString(seg.text)
		case segmentBefore:
			b.WriteString(content[:m[0]])
		case segmentAfter:
			b.WriteString(content[m[1]:])
		case segmentGroup:
			if seg.group < 0 || 2*seg.group+1 >= len(m) {
				continue
			}
			start, end := m[2*seg.group], m[2*seg.group+1]
			if start < 0 {
				continue
			}
			b.WriteString(content[start:end])
		}
	}
}

func parseTemplate(s string, re *regexp.Regexp) template {
	groups := re.NumSubexp()

	hasNames := false
	for _, name := range re.SubexpNames() {
		if name != "" {
			hasNames = true
			break
		}
	}

	var (
		segs template
		lit  strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: segmentLiteral, text: lit.String()})
			lit.Reset()
		}
	}
	emit := func(seg segment) {
		flush()
		segs = append(segs, seg)
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' || i+1 >= len(s) {
			lit.WriteByte(c)
			continue
		}

		next := s[i+1]
		switch {
		case next == '$':
			lit.WriteByte('$')
			i++
		case next == '&':
			emit(segment{kind: segmentGroup, group: 0})
			i++
		case next == '`':
			emit(segment{kind: segmentBefore})
			i++
		case next == '\'':
			emit(segment{kind: segmentAfter})
			i++
		case isDigit(next):
			n, width := int(next-'0'), 1
			if i+2 < len(s) && isDigit(s[i+2]) {
				if nn := n*10 + int(s[i+2]-'0'); nn >= 1 && nn <= groups {
					n, width = nn, 2
				}
			}
			if n < 1 || n > groups {
				lit.WriteByte('$')
				continue
			}
			emit(segment{kind: segmentGroup, group: n})
			i += width
		case next == '<' && hasNames:
			end := strings.IndexByte(s[i+2:], '>')
			if end < 0 {
				lit.WriteByte('$')
				continue
			}
			emit(segment{kind: segmentGroup, group: re.SubexpIndex(s[i+2 : i+2+end])})
			i += 2 + end
		default:
			lit.WriteByte('$')
		}
	}
	flush()

	return segs
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
