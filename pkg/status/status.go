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

package status

import (
	"fmt"
	"sync/atomic"
)

// 📊 Outcome is what happened to a single entry during a run
type Outcome int

const (
	OutcomeUpdated Outcome = iota // file matched and was rewritten
	OutcomeSkipped                // file had no match
	OutcomeFailed                 // scan, stat, read or write failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "error"
	default:
		return "unknown"
	}
}

// 🧮 Tally counts outcomes. The zero value is ready to use and safe for concurrent use.
type Tally struct {
	updated atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
}

// Record counts one outcome
func (t *Tally) Record(o Outcome) {
	switch o {
	case OutcomeUpdated:
		t.updated.Add(1)
	case OutcomeSkipped:
		t.skipped.Add(1)
	case OutcomeFailed:
		t.failed.Add(1)
	}
}

// Summary returns a point in time copy of the counters
func (t *Tally) Summary() Summary {
	return Summary{
		Updated: int(t.updated.Load()),
		Skipped: int(t.skipped.Load()),
		Errors:  int(t.failed.Load()),
	}
}

// 📋 Summary is the result of a run
type Summary struct {
	Updated int
	Skipped int
	Errors  int
}

// Files is the number of files that were read successfully
func (s Summary) Files() int {
	return s.Updated + s.Skipped
}

// HasErrors reports whether any entry failed
func (s Summary) HasErrors() bool {
	return s.Errors > 0
}

// String returns the one line form used in the audit log
func (s Summary) String() string {
	return fmt.Sprintf("%d updated, %d skipped, %d errors", s.Updated, s.Skipped, s.Errors)
}
