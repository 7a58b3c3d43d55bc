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

// Package remote defines where apply reads documents from: the local
// filesystem or a hosted repository registered by host name.
package remote

import (
	"context"
	"io"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Source lists and opens haystack documents
type Source interface {
	// Name is the source label shown in logs ("local" or "remote")
	Name() string
	// List returns the document paths matching patterns, every document when patterns is empty
	List(ctx context.Context, patterns []string) ([]string, error)
	// Open returns the content of one listed document
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// 📍 Ref is a repository at a ref, written host/owner/name@ref
type Ref struct {
	Host  string
	Owner string
	Name  string
	Ref   string // Branch, tag or commit, empty for the default branch
}

// 🔍 ParseRef parses "github.com/org/repo@ref". The scheme, a ".git" suffix
// and the ref are optional; "org/repo" defaults to github.com.
func ParseRef(s string) (Ref, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "https://")
	raw = strings.TrimPrefix(raw, "http://")

	var ref Ref
	if i := strings.LastIndex(raw, "@"); i >= 0 {
		ref.Ref = raw[i+1:]
		raw = raw[:i]
		if ref.Ref == "" {
			return Ref{}, errors.Errorf("invalid repository reference %q: empty ref", s)
		}
	}

	parts := strings.Split(strings.Trim(raw, "/"), "/")
	switch len(parts) {
	case 2:
		ref.Host, ref.Owner, ref.Name = "github.com", parts[0], parts[1]
	case 3:
		ref.Host, ref.Owner, ref.Name = parts[0], parts[1], parts[2]
	default:
		return Ref{}, errors.Errorf("invalid repository reference %q: want host/owner/name[@ref]", s)
	}
	ref.Name = strings.TrimSuffix(ref.Name, ".git")

	if ref.Host == "" || ref.Owner == "" || ref.Name == "" {
		return Ref{}, errors.Errorf("invalid repository reference %q: want host/owner/name[@ref]", s)
	}

	return ref, nil
}

// String returns host/owner/name, with @ref when a ref is set
func (r Ref) String() string {
	s := r.Host + "/" + r.Owner + "/" + r.Name
	if r.Ref != "" {
		s += "@" + r.Ref
	}
	return s
}

// 🏭 Factory creates a source for a repository reference
type Factory func(ctx context.Context, ref Ref) (Source, error)

var (
	// 🗺️ registry is a map of host names to factories
	registry = make(map[string]Factory)
)

// 📝 Register registers a factory for a host
func Register(host string, factory Factory) {
	registry[host] = factory
}

// 🎯 Open parses ref and creates a source with the factory registered for its host
func Open(ctx context.Context, ref string) (Source, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}

	factory, ok := registry[r.Host]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("provider %s not found, options: %s", r.Host, strings.Join(options, ", "))
	}

	src, err := factory(ctx, r)
	if err != nil {
		return nil, errors.Errorf("creating %s source: %w", r.Host, err)
	}
	return src, nil
}
