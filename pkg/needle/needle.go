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

// Package needle holds the things a replacement pipeline searches for.
//
// A needle is either literal text or a caller supplied pattern. Both forms
// resolve to a compiled [Matcher] with at least one capture group, so the
// replacement engine only ever deals with patterns.
package needle

import (
	"fmt"
	"reflect"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind tells literal needles apart from patterns
type Kind int

const (
	KindInvalid Kind = iota
	KindLiteral
	KindPattern
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindPattern:
		return "pattern"
	default:
		return "invalid"
	}
}

// 🔌 Matcher is the host pattern engine surface the replacer needs.
// Both *regexp.Regexp and *coregex.Regex satisfy it.
type Matcher interface {
	// FindAllStringSubmatchIndex returns index pairs for every successive match and its groups
	FindAllStringSubmatchIndex(s string, n int) [][]int
	// SubexpNames returns one name per group, index 0 being the whole match
	SubexpNames() []string
	// String returns the source pattern
	String() string
}

// 🪡 Needle is literal text or a compiled pattern
type Needle struct {
	kind    Kind
	literal string
	matcher Matcher
}

// 📝 Literal creates a literal needle. Matching is case-insensitive.
func Literal(text string) Needle {
	return Needle{kind: KindLiteral, literal: text}
}

// 🔍 Pattern wraps an already compiled matcher. It must have a capture group.
func Pattern(m Matcher) Needle {
	if v := reflect.ValueOf(m); m != nil && v.Kind() == reflect.Pointer && v.IsNil() {
		m = nil
	}
	return Needle{kind: KindPattern, matcher: m}
}

// 🏗️ Compile compiles expr with the given engine into a pattern needle
func Compile(expr string, engine Engine) (Needle, error) {
	m, err := engine.Compile(expr)
	if err != nil {
		return Needle{}, errors.Errorf("compiling pattern %q: %w", expr, err)
	}
	return Pattern(m), nil
}

// Kind returns the needle kind
func (n Needle) Kind() Kind {
	return n.kind
}

// IsValid reports whether the needle was built by Literal, Pattern or Compile
func (n Needle) IsValid() bool {
	switch n.kind {
	case KindLiteral:
		return true
	case KindPattern:
		return n.matcher != nil
	default:
		return false
	}
}

// String returns the literal text or the pattern source
func (n Needle) String() string {
	switch n.kind {
	case KindLiteral:
		return n.literal
	case KindPattern:
		if n.matcher == nil {
			return "<nil pattern>"
		}
		return n.matcher.String()
	default:
		return "<invalid needle>"
	}
}

// Equal reports whether two needles are the same key: literals with the same
// text, or patterns backed by the same matcher pointer
func (n Needle) Equal(o Needle) bool {
	if !n.IsValid() || !o.IsValid() || n.kind != o.kind {
		return false
	}
	if n.kind == KindLiteral {
		return n.literal == o.literal
	}
	a, b := reflect.ValueOf(n.matcher), reflect.ValueOf(o.matcher)
	if a.Kind() != reflect.Pointer || b.Kind() != reflect.Pointer {
		return false
	}
	return a.Type() == b.Type() && a.Pointer() == b.Pointer()
}

// GoString prints the needle kind and source
func (n Needle) GoString() string {
	return fmt.Sprintf("needle.%s(%q)", n.kind, n.String())
}

// 🏭 Matcher resolves the needle into a capture-group matcher.
// Literal needles are escaped and compiled by engine as (?im)(literal).
func (n Needle) Matcher(engine Engine) (Matcher, error) {
	switch n.kind {
	case KindLiteral:
		m, err := engine.Compile("(?im)(" + engine.QuoteMeta(n.literal) + ")")
		if err != nil {
			return nil, errors.Errorf("compiling literal %q: %w", n.literal, err)
		}
		return m, nil
	case KindPattern:
		if n.matcher == nil {
			return nil, errors.New("pattern needle has no matcher")
		}
		if Groups(n.matcher) < 1 {
			return nil, errors.WithDetails(ErrNoCaptureGroup, "pattern", n.matcher.String())
		}
		return n.matcher, nil
	default:
		return nil, errors.New("needle is neither a literal nor a pattern")
	}
}

// Groups returns the number of capture groups in m, not counting the whole match.
// Engines disagree on NumSubexp so the count comes from SubexpNames.
func Groups(m Matcher) int {
	return len(m.SubexpNames()) - 1
}

// ErrNoCaptureGroup is returned for pattern needles without a capture group
var ErrNoCaptureGroup = errors.Base("pattern needle must have a capture group")
