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
	"github.com/walteh/segrep/pkg/needle"
	"github.com/walteh/segrep/pkg/segment"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Run applies every pair of the pipeline in order, each pass consuming the
// previous pass's output. The haystack slice is never modified.
func (p Pipeline[T]) Run(haystack []segment.Segment[T], opts ...Option) ([]segment.Segment[T], error) {
	o := newOptions(opts)

	if len(haystack) == 0 {
		if o.strict {
			return nil, errors.WithStack(ErrMissingArgument)
		}
		return []segment.Segment[T]{}, nil
	}
	if len(p) == 0 {
		return nil, errors.WithStack(ErrEmptyPipeline)
	}

	acc := haystack
	for i, pair := range p {
		m, err := pair.validate(i, o.engine)
		if err != nil {
			return nil, err
		}

		var matches int
		acc, matches = pass(acc, m, pair.Replacer, i)

		o.logger.Trace().
			Int("needle_index", i).
			Str("needle", pair.Needle.String()).
			Str("kind", pair.Needle.Kind().String()).
			Int("matches", matches).
			Int("segments", len(acc)).
			Msg("needle pass complete")
	}

	return acc, nil
}

// 🔍 validate checks one entry right before its pass and resolves its matcher
func (p Pair[T]) validate(index int, engine needle.Engine) (needle.Matcher, error) {
	if !p.Needle.IsValid() {
		return nil, errors.Errorf("%w: needle %d is neither a literal nor a pattern", ErrInvalidPipelineEntry, index)
	}
	if p.Replacer == nil {
		return nil, errors.Errorf("%w: needle %d (%s) has no replacer", ErrInvalidPipelineEntry, index, p.Needle.String())
	}
	m, err := p.Needle.Matcher(engine)
	if err != nil {
		return nil, errors.Errorf("%w: needle %d: %s", ErrInvalidPipelineEntry, index, err.Error())
	}
	return m, nil
}

// 🔄 pass runs one needle over every text segment of in and returns the new
// sequence together with the number of matches replaced
func pass[T any](in []segment.Segment[T], m needle.Matcher, replacer Replacer[T], needleIndex int) ([]segment.Segment[T], int) {
	out := make([]segment.Segment[T], 0, len(in))
	matchIndex := 0

	for _, seg := range in {
		text, ok := seg.Text()
		if !ok {
			out = append(out, seg)
			continue
		}
		if text == "" {
			continue
		}

		sc := newScanner(m, text)
		for {
			before, match, found := sc.nextMatch()
			if !found {
				break
			}
			if before != "" {
				out = append(out, segment.Text[T](before))
			}
			out = append(out, segment.Value(replacer(match.Text, Meta{
				Match:       match,
				NeedleIndex: needleIndex,
				MatchIndex:  matchIndex,
				Key:         Key(needleIndex, matchIndex),
			})))
			matchIndex++
		}
		if tail := sc.rest(); tail != "" {
			out = append(out, segment.Text[T](tail))
		}
	}

	return out, matchIndex
}
