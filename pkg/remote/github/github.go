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

// Package github reads haystack documents from a GitHub repository at a ref.
// Importing it registers the github.com host with package remote.
package github

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/segrep/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

func init() {
	remote.Register("github.com", New)
}

var _ remote.Source = (*Source)(nil)

// 🎯 Source implements remote.Source for one GitHub repository
type Source struct {
	client *github.Client
	ref    remote.Ref
}

// 🏭 New creates a GitHub source. GITHUB_TOKEN is used when set.
func New(ctx context.Context, ref remote.Ref) (remote.Source, error) {
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	} else {
		zerolog.Ctx(ctx).Debug().Msg("GITHUB_TOKEN not set, using unauthenticated requests")
	}
	return NewWithClient(client, ref), nil
}

// 🏭 NewWithClient creates a GitHub source around an existing client
func NewWithClient(client *github.Client, ref remote.Ref) *Source {
	return &Source{client: client, ref: ref}
}

// Name implements remote.Source
func (s *Source) Name() string {
	return "remote"
}

// Ref returns the repository reference, with the resolved ref once List or Open ran
func (s *Source) Ref() remote.Ref {
	return s.ref
}

// 🔍 resolveRef fills in the default branch when no ref was given
func (s *Source) resolveRef(ctx context.Context) (string, error) {
	if s.ref.Ref != "" {
		return s.ref.Ref, nil
	}

	repo, _, err := s.client.Repositories.Get(ctx, s.ref.Owner, s.ref.Name)
	if err != nil {
		return "", errors.Errorf("getting repository: %w", err)
	}

	branch := repo.GetDefaultBranch()
	if branch == "" {
		return "", errors.Errorf("repository %s has no default branch", s.ref)
	}

	zerolog.Ctx(ctx).Debug().Str("repository", s.ref.String()).Str("ref", branch).Msg("resolved default branch")
	s.ref.Ref = branch
	return branch, nil
}

// 📂 List returns the repository blobs matching the doublestar patterns
func (s *Source) List(ctx context.Context, patterns []string) ([]string, error) {
	ref, err := s.resolveRef(ctx)
	if err != nil {
		return nil, err
	}

	tree, _, err := s.client.Git.GetTree(ctx, s.ref.Owner, s.ref.Name, ref, true)
	if err != nil {
		return nil, errors.Errorf("getting repository tree: %w", err)
	}
	if tree.GetTruncated() {
		zerolog.Ctx(ctx).Warn().Str("repository", s.ref.String()).Msg("repository tree truncated, some files are not listed")
	}

	var files []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}

		path := entry.GetPath()
		if !matchAny(patterns, path) {
			continue
		}

		files = append(files, path)
	}

	return files, nil
}

// 📄 Open retrieves a single file's contents
func (s *Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	ref, err := s.resolveRef(ctx)
	if err != nil {
		return nil, err
	}

	content, _, _, err := s.client.Repositories.GetContents(ctx, s.ref.Owner, s.ref.Name, path, &github.RepositoryContentGetOptions{
		Ref: ref,
	})
	if err != nil {
		return nil, errors.Errorf("getting file content: %w", err)
	}
	if content == nil {
		return nil, errors.Errorf("%s is a directory", path)
	}

	// files over 1 MB come back without content and are read as raw blobs
	if content.GetEncoding() == "none" {
		raw, _, err := s.client.Git.GetBlobRaw(ctx, s.ref.Owner, s.ref.Name, content.GetSHA())
		if err != nil {
			return nil, errors.Errorf("getting blob %s for %s: %w", content.GetSHA(), path, err)
		}
		return io.NopCloser(bytes.NewReader(raw)), nil
	}

	data, err := content.GetContent()
	if err != nil {
		return nil, errors.Errorf("decoding content: %w", err)
	}

	return io.NopCloser(strings.NewReader(data)), nil
}

func matchAny(patterns []string, path string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		p = strings.TrimPrefix(p, "./")
		if p == "." || p == path {
			return true
		}
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
		if strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}
