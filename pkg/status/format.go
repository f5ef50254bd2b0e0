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
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Render writes a summary table for s to w
func Render(w io.Writer, s Summary) error {
	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(pterm.TableData{
			{"Outcome", "Files"},
			{OutcomeUpdated.String(), strconv.Itoa(s.Updated)},
			{OutcomeSkipped.String(), strconv.Itoa(s.Skipped)},
			{OutcomeFailed.String(), strconv.Itoa(s.Errors)},
		}).
		Srender()
	if err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}

	if _, err := fmt.Fprintln(w, table); err != nil {
		return errors.Errorf("writing summary: %w", err)
	}
	return nil
}
