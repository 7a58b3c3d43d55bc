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

// Package replace splits text around needle matches and swaps every match for
// whatever a caller supplied replacer returns.
//
// The result is an ordered sequence of segments: untouched text and replaced
// values. The sequence can be fed back in as a haystack; replaced values are
// never scanned again, so several needles or several calls compose.
//
//	segs, err := replace.String("My vanilla string", "vanilla", func(string, replace.Meta) string {
//		return "magic"
//	})
//	// segs: Text("My "), Value("magic"), Text(" string")
package replace

import (
	"github.com/walteh/segrep/pkg/segment"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Callback replaces every needle occurrence in haystack.
//
// needleSpec is a single needle paired with replacer, or an ordered map or
// pipeline carrying its own replacers (see Normalize). An empty haystack
// returns an empty sequence before needleSpec is looked at.
func Callback[T any](haystack []segment.Segment[T], needleSpec any, replacer Replacer[T], opts ...Option) ([]segment.Segment[T], error) {
	if len(haystack) == 0 {
		return Pipeline[T]{}.Run(haystack, opts...)
	}

	pipeline, err := Normalize(needleSpec, replacer)
	if err != nil {
		return nil, errors.Errorf("normalizing needles: %w", err)
	}

	return pipeline.Run(haystack, opts...)
}

// 🎯 String is Callback over a single string haystack
func String[T any](haystack string, needleSpec any, replacer Replacer[T], opts ...Option) ([]segment.Segment[T], error) {
	return Callback(segment.FromString[T](haystack), needleSpec, replacer, opts...)
}

// 🎯 Mixed is Callback over a loosely typed haystack, flattened one level by segment.Mixed.
// Elements that are not strings pass through unchanged.
func Mixed(haystack []any, needleSpec any, replacer Replacer[any], opts ...Option) ([]segment.Segment[any], error) {
	return Callback(segment.Mixed(haystack), needleSpec, replacer, opts...)
}
