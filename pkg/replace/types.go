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

package replace

import (
	"strconv"

	"github.com/walteh/segrep/pkg/needle"
)

// 🔄 Replacer produces the value that stands in for one match
type Replacer[T any] func(match string, meta Meta) T

// 🎯 Match is the raw match information for one occurrence
type Match struct {
	Text    string   // Full match text
	Groups  []string // Group texts, Groups[0] is the full match, unmatched groups are ""
	Indices []int    // Submatch index pairs into Input, -1 for unmatched groups
	Input   string   // The text segment that was scanned
}

// Start is the byte offset of the match within Input
func (m Match) Start() int {
	return m.Indices[0]
}

// End is the byte offset just past the match within Input
func (m Match) End() int {
	return m.Indices[1]
}

// Group returns group i and whether it took part in the match
func (m Match) Group(i int) (string, bool) {
	if i < 0 || 2*i+1 >= len(m.Indices) || m.Indices[2*i] < 0 {
		return "", false
	}
	return m.Groups[i], true
}

// 📋 Meta describes where a match sits in the pipeline
type Meta struct {
	Match       Match
	NeedleIndex int    // Position of the needle in the pipeline
	MatchIndex  int    // Occurrence number within this needle's pass
	Key         string // "{NeedleIndex}-{MatchIndex}"
}

// Key formats the composite key of a replacement occurrence
func Key(needleIndex, matchIndex int) string {
	return strconv.Itoa(needleIndex) + "-" + strconv.Itoa(matchIndex)
}

// 🔗 Pair binds a needle to its replacer
type Pair[T any] struct {
	Needle   needle.Needle
	Replacer Replacer[T]
}

// Entry builds a pair. key may be a string (literal), a needle.Needle or a
// needle.Matcher (pattern). Anything else yields an invalid needle that fails
// when the pipeline reaches it.
func Entry[T any](key any, r Replacer[T]) Pair[T] {
	n, _ := toNeedle(key)
	return Pair[T]{Needle: n, Replacer: r}
}

// 📚 Pipeline is the ordered list of pairs applied left to right
type Pipeline[T any] []Pair[T]

func toNeedle(key any) (needle.Needle, bool) {
	switch k := key.(type) {
	case string:
		return needle.Literal(k), true
	case needle.Needle:
		return k, k.IsValid()
	case needle.Matcher:
		n := needle.Pattern(k)
		return n, n.IsValid()
	default:
		return needle.Needle{}, false
	}
}
