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
	"reflect"

	"github.com/walteh/segrep/pkg/needle"
	"gitlab.com/tozd/go/errors"
)

// 🧭 Normalize turns a needle spec into an ordered pipeline.
//
// spec is either a single needle (string, needle.Needle, needle.Matcher) that
// pairs with replacer, or an ordered collection (*Map[T], Map[T], Pipeline[T],
// []Pair[T]) whose entries carry their own replacers; replacer is ignored then.
// Unordered Go maps are rejected.
func Normalize[T any](spec any, replacer Replacer[T]) (Pipeline[T], error) {
	var pipeline Pipeline[T]

	switch s := spec.(type) {
	case *Map[T]:
		if s == nil {
			return nil, errors.Errorf("%w: nil map", ErrInvalidArgument)
		}
		pipeline = s.Entries()
	case Map[T]:
		pipeline = s.Entries()
	case Pipeline[T]:
		pipeline = append(Pipeline[T]{}, s...)
	case []Pair[T]:
		pipeline = append(Pipeline[T]{}, s...)
	default:
		n, ok := toNeedle(spec)
		if !ok {
			return nil, errors.Errorf("%w: %s", ErrInvalidArgument, describe(spec))
		}
		if replacer == nil {
			return nil, errors.Errorf("%w: needle %q was passed without a replacer", ErrInvalidArgument, n.String())
		}
		pipeline = Pipeline[T]{{Needle: n, Replacer: replacer}}
	}

	if len(pipeline) == 0 {
		return nil, errors.WithStack(ErrEmptyPipeline)
	}

	for i, p := range pipeline {
		if p.Needle.Kind() != needle.KindPattern || !p.Needle.IsValid() {
			continue
		}
		if _, err := p.Needle.Matcher(needle.Stdlib); err != nil {
			return nil, errors.Errorf("%w: needle %d: %s", ErrInvalidArgument, i, err.Error())
		}
	}

	return pipeline, nil
}

func describe(spec any) string {
	if spec == nil {
		return "nil needle"
	}
	t := reflect.TypeOf(spec)
	if t.Kind() == reflect.Map {
		return "unordered map " + t.String() + " was passed, use replace.Map or replace.Pipeline"
	}
	return "invalid needle of type " + t.String() + " was passed"
}
