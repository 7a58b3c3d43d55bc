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

// Package text runs replacement pipelines over whole documents and renders
// the resulting segments back into text, JSON or a line diff.
package text

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/segrep/pkg/replace"
	"github.com/walteh/segrep/pkg/segment"
	"gitlab.com/tozd/go/errors"
)

// 📊 ReplacementResult is one document before and after its pipeline
type ReplacementResult[T any] struct {
	OriginalContent  []byte
	ModifiedContent  []byte
	Segments         []segment.Segment[T]
	ReplacementCount int
	WasModified      bool
}

// 🎯 Apply reads content and runs pipeline over it. An empty pipeline leaves
// the document untouched.
func Apply[T any](ctx context.Context, content io.Reader, pipeline replace.Pipeline[T], opts ...replace.Option) (*ReplacementResult[T], error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult[T]{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		Segments:        segment.FromString[T](string(originalContent)),
	}

	if len(pipeline) == 0 || len(originalContent) == 0 {
		return result, nil
	}

	opts = append([]replace.Option{replace.WithLogger(*zerolog.Ctx(ctx))}, opts...)
	segs, err := pipeline.Run(result.Segments, opts...)
	if err != nil {
		return nil, errors.Errorf("running pipeline: %w", err)
	}

	result.Segments = segs
	result.ReplacementCount = len(segment.Values(segs))
	result.ModifiedContent = []byte(Render(segs))
	result.WasModified = !bytes.Equal(result.OriginalContent, result.ModifiedContent)

	return result, nil
}

// 📝 Render joins segments back into text. Values are formatted with %v, so a
// fmt.Stringer decides how it is written.
func Render[T any](segs []segment.Segment[T]) string {
	var sb strings.Builder
	for _, s := range segs {
		if t, ok := s.Text(); ok {
			sb.WriteString(t)
			continue
		}
		v, _ := s.Value()
		fmt.Fprintf(&sb, "%v", v)
	}
	return sb.String()
}
