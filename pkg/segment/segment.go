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

// Package segment defines the elements of a replacement sequence: runs of
// literal text that may still be scanned, and opaque values produced by a
// replacer that are never scanned again.
package segment

import (
	"encoding/json"
	"fmt"
)

// 🧩 Segment is either literal text or an opaque value of type T
type Segment[T any] struct {
	text    string
	value   T
	isValue bool
}

// 📝 Text creates a literal text segment
func Text[T any](s string) Segment[T] {
	return Segment[T]{text: s}
}

// 📦 Value creates an opaque value segment
func Value[T any](v T) Segment[T] {
	return Segment[T]{value: v, isValue: true}
}

// IsText reports whether the segment holds literal text
func (s Segment[T]) IsText() bool {
	return !s.isValue
}

// IsValue reports whether the segment holds a replaced value
func (s Segment[T]) IsValue() bool {
	return s.isValue
}

// Text returns the literal text and true, or "" and false for value segments
func (s Segment[T]) Text() (string, bool) {
	if s.isValue {
		return "", false
	}
	return s.text, true
}

// Value returns the held value and true, or the zero T and false for text segments
func (s Segment[T]) Value() (T, bool) {
	if !s.isValue {
		var zero T
		return zero, false
	}
	return s.value, true
}

// String implements fmt.Stringer
func (s Segment[T]) String() string {
	if s.isValue {
		return fmt.Sprintf("%v", s.value)
	}
	return s.text
}

// GoString prints the segment kind, useful in test failure output
func (s Segment[T]) GoString() string {
	if s.isValue {
		return fmt.Sprintf("Value(%#v)", s.value)
	}
	return fmt.Sprintf("Text(%q)", s.text)
}

type jsonSegment[T any] struct {
	Text  *string `json:"text,omitempty"`
	Value *T      `json:"value,omitempty"`
}

// MarshalJSON encodes text as {"text": ...} and values as {"value": ...}
func (s Segment[T]) MarshalJSON() ([]byte, error) {
	if s.isValue {
		return json.Marshal(jsonSegment[T]{Value: &s.value})
	}
	return json.Marshal(jsonSegment[T]{Text: &s.text})
}

// UnmarshalJSON is the inverse of MarshalJSON
func (s *Segment[T]) UnmarshalJSON(data []byte) error {
	var js jsonSegment[T]
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	switch {
	case js.Value != nil:
		*s = Value(*js.Value)
	case js.Text != nil:
		*s = Text[T](*js.Text)
	default:
		*s = Text[T]("")
	}
	return nil
}
