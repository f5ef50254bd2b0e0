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

import "strings"

// LiteralReplacer implements Replacer using basic string replacement
type LiteralReplacer struct {
	from string
	to   string
}

// NewLiteralReplacer creates a new LiteralReplacer
func NewLiteralReplacer(from, to string) *LiteralReplacer {
	return &LiteralReplacer{from: from, to: to}
}

// Apply implements Replacer.Apply
func (r *LiteralReplacer) Apply(content string) Result {
	if r.from == "" {
		return Result{Content: content}
	}

	count := strings.Count(content, r.from)
	if count == 0 {
		return Result{Content: content}
	}

	return Result{
		Content:    strings.ReplaceAll(content, r.from, r.to),
		MatchCount: count,
	}
}

// Mode implements Replacer.Mode
func (r *LiteralReplacer) Mode() Mode {
	return ModeLiteral
}
