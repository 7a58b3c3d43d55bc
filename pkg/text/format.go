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
	"encoding/json"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/segrep/pkg/segment"
	"gitlab.com/tozd/go/errors"
)

// 🗂️ Format selects how a processed document is printed
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatDiff Format = "diff"
)

// ParseFormat validates a format name, empty means text
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatDiff:
		return f, nil
	default:
		return "", errors.Errorf("format %s not found, options: text, json, diff", name)
	}
}

// 📄 Document is the JSON shape of one processed document
type Document[T any] struct {
	Path         string               `json:"path"`
	Source       string               `json:"source"`
	Replacements int                  `json:"replacements"`
	Segments     []segment.Segment[T] `json:"segments"`
}

// NewDocument builds the JSON document for a result
func NewDocument[T any](path, source string, result *ReplacementResult[T]) Document[T] {
	segs := result.Segments
	if segs == nil {
		segs = []segment.Segment[T]{}
	}
	return Document[T]{
		Path:         path,
		Source:       source,
		Replacements: result.ReplacementCount,
		Segments:     segs,
	}
}

// 📝 JSON encodes documents as an indented JSON array
func JSON[T any](docs ...Document[T]) ([]byte, error) {
	if docs == nil {
		docs = []Document[T]{}
	}
	out, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, errors.Errorf("encoding documents: %w", err)
	}
	return append(out, '\n'), nil
}

// 🔍 Diff returns a line diff from original to modified, or "" when they are equal
func Diff(name, original, modified string) string {
	if original == modified {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString("--- " + name + "\n")
	sb.WriteString("+++ " + name + "\n")
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(prefix + line + "\n")
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}
