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

import "github.com/walteh/segrep/pkg/needle"

// 🔦 scanner walks the non-overlapping matches of one text segment.
// A new scanner is made for every segment so no cursor state is shared.
type scanner struct {
	text    string
	matches [][]int
	next    int
	cursor  int
}

func newScanner(m needle.Matcher, text string) *scanner {
	return &scanner{
		text:    text,
		matches: m.FindAllStringSubmatchIndex(text, -1),
	}
}

// nextMatch returns the next match at or after the cursor together with the
// text between the cursor and the match, then moves the cursor past it.
// Matches that would not move the cursor forward, zero-length ones included,
// are skipped.
func (s *scanner) nextMatch() (string, Match, bool) {
	for s.next < len(s.matches) {
		loc := s.matches[s.next]
		s.next++

		if loc[0] < s.cursor || loc[1] <= loc[0] {
			continue
		}

		before := s.text[s.cursor:loc[0]]
		s.cursor = loc[1]
		return before, matchFromIndex(s.text, loc), true
	}
	return "", Match{}, false
}

// rest returns the unscanned tail and marks the segment done
func (s *scanner) rest() string {
	tail := s.text[s.cursor:]
	s.cursor = len(s.text)
	return tail
}

func matchFromIndex(text string, loc []int) Match {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	indices := make([]int, len(loc))
	copy(indices, loc)
	return Match{
		Text:    groups[0],
		Groups:  groups,
		Indices: indices,
		Input:   text,
	}
}
