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
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 📊 Summary renders a table of documents and their replacement counts
func (l *Logger) Summary(docs []DocumentOperation) error {
	data := pterm.TableData{{"Document", "Source", "Status", "Rules", "Replacements"}}

	total := 0
	for _, d := range docs {
		status := d.Status
		if d.Err != nil {
			status = "error"
		}
		data = append(data, []string{
			d.Path,
			d.Source,
			status,
			strconv.Itoa(d.Rules),
			strconv.Itoa(d.Replacements),
		})
		total += d.Replacements
	}
	data = append(data, []string{"total", "", "", "", strconv.Itoa(total)})

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.console.Write([]byte(out + "\n")); err != nil {
		return errors.Errorf("writing summary: %w", err)
	}
	l.zlog.Debug().Int("documents", len(docs)).Int("replacements", total).Msg("summary rendered")
	return nil
}
