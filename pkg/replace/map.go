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

// 🗺️ Map is an insertion ordered association of needles to replacers.
//
// Setting a key that is already present replaces its replacer and keeps its
// position. Literal keys are equal when their text is equal, pattern keys when
// they are the same matcher pointer.
type Map[T any] struct {
	pairs Pipeline[T]
}

// NewMap creates a map holding pairs in order
func NewMap[T any](pairs ...Pair[T]) *Map[T] {
	m := &Map[T]{}
	for _, p := range pairs {
		m.put(p)
	}
	return m
}

// Set adds or updates key. See Entry for the accepted key types.
func (m *Map[T]) Set(key any, r Replacer[T]) *Map[T] {
	m.put(Entry(key, r))
	return m
}

// Len returns the number of entries
func (m *Map[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Entries returns a copy of the entries in insertion order
func (m *Map[T]) Entries() Pipeline[T] {
	if m == nil {
		return Pipeline[T]{}
	}
	out := make(Pipeline[T], len(m.pairs))
	copy(out, m.pairs)
	return out
}

func (m *Map[T]) put(p Pair[T]) {
	for i := range m.pairs {
		if m.pairs[i].Needle.Equal(p.Needle) {
			m.pairs[i].Replacer = p.Replacer
			return
		}
	}
	m.pairs = append(m.pairs, p)
}
