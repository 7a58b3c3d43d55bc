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

package segment

// 🌾 FromString wraps a single string haystack. An empty string yields an empty sequence.
func FromString[T any](s string) []Segment[T] {
	if s == "" {
		return []Segment[T]{}
	}
	return []Segment[T]{Text[T](s)}
}

// 🌾 FromStrings wraps each string as a text segment, keeping empty strings
func FromStrings[T any](ss ...string) []Segment[T] {
	out := make([]Segment[T], 0, len(ss))
	for _, s := range ss {
		out = append(out, Text[T](s))
	}
	return out
}

// 🌾 Mixed builds a sequence from loosely typed elements, flattening one level.
//
// Strings become text. Segments are kept as they are. Nested []any, []string
// and []Segment[any] are spliced in, their own elements converted by the same
// rules without further flattening. Anything else (numbers, NaN, structs, maps,
// deeper slices) becomes an opaque value that later passes leave untouched.
func Mixed(items []any) []Segment[any] {
	out := make([]Segment[any], 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case []any:
			for _, inner := range v {
				out = append(out, single(inner))
			}
		case []string:
			for _, inner := range v {
				out = append(out, Text[any](inner))
			}
		case []Segment[any]:
			out = append(out, v...)
		default:
			out = append(out, single(v))
		}
	}
	return out
}

func single(item any) Segment[any] {
	switch v := item.(type) {
	case string:
		return Text[any](v)
	case Segment[any]:
		return v
	default:
		return Value[any](v)
	}
}

// 🔍 Texts returns the text of every text segment, in order
func Texts[T any](segs []Segment[T]) []string {
	var out []string
	for _, s := range segs {
		if t, ok := s.Text(); ok {
			out = append(out, t)
		}
	}
	return out
}

// 🔍 Values returns every value segment's value, in order
func Values[T any](segs []Segment[T]) []T {
	var out []T
	for _, s := range segs {
		if v, ok := s.Value(); ok {
			out = append(out, v)
		}
	}
	return out
}
