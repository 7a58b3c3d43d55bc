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

package remote

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        Ref
		wantString  string
		errContains string
	}{
		{
			name:       "host_owner_name_ref",
			input:      "github.com/walteh/segrep@main",
			want:       Ref{Host: "github.com", Owner: "walteh", Name: "segrep", Ref: "main"},
			wantString: "github.com/walteh/segrep@main",
		},
		{
			name:       "https_with_git_suffix",
			input:      "https://github.com/walteh/segrep.git@v1.2.0",
			want:       Ref{Host: "github.com", Owner: "walteh", Name: "segrep", Ref: "v1.2.0"},
			wantString: "github.com/walteh/segrep@v1.2.0",
		},
		{
			name:       "default_host_and_ref",
			input:      "walteh/segrep",
			want:       Ref{Host: "github.com", Owner: "walteh", Name: "segrep"},
			wantString: "github.com/walteh/segrep",
		},
		{
			name:       "trailing_slash",
			input:      "github.com/walteh/segrep/",
			want:       Ref{Host: "github.com", Owner: "walteh", Name: "segrep"},
			wantString: "github.com/walteh/segrep",
		},
		{
			name:        "missing_name",
			input:       "segrep",
			errContains: "want host/owner/name[@ref]",
		},
		{
			name:        "too_many_parts",
			input:       "github.com/a/b/c",
			errContains: "want host/owner/name[@ref]",
		},
		{
			name:        "empty_ref",
			input:       "github.com/walteh/segrep@",
			errContains: "empty ref",
		},
		{
			name:        "empty_owner",
			input:       "github.com//segrep",
			errContains: "want host/owner/name[@ref]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.input)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantString, got.String())
		})
	}
}

type fakeSource struct {
	ref Ref
}

func (f *fakeSource) Name() string { return "remote" }

func (f *fakeSource) List(ctx context.Context, patterns []string) ([]string, error) {
	return nil, nil
}

func (f *fakeSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func TestOpen(t *testing.T) {
	original := registry
	defer func() {
		registry = original
	}()
	registry = make(map[string]Factory)

	Register("example.com", func(ctx context.Context, ref Ref) (Source, error) {
		return &fakeSource{ref: ref}, nil
	})
	Register("broken.com", func(ctx context.Context, ref Ref) (Source, error) {
		return nil, errors.New("no credentials")
	})

	src, err := Open(context.Background(), "example.com/org/repo@dev")
	require.NoError(t, err)
	require.IsType(t, &fakeSource{}, src)
	assert.Equal(t, Ref{Host: "example.com", Owner: "org", Name: "repo", Ref: "dev"}, src.(*fakeSource).ref)

	_, err = Open(context.Background(), "gitlab.com/org/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider gitlab.com not found, options: broken.com, example.com")

	_, err = Open(context.Background(), "broken.com/org/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating broken.com source: no credentials")

	_, err = Open(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid repository reference")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLocalList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "a")
	writeFile(t, filepath.Join(dir, "docs", "b.md"), "b")
	writeFile(t, filepath.Join(dir, "docs", "c.txt"), "c")
	writeFile(t, filepath.Join(dir, ".git", "config"), "x")

	ctx := context.Background()
	src := NewLocal()
	assert.Equal(t, "local", src.Name())

	t.Run("directory_is_walked", func(t *testing.T) {
		files, err := src.List(ctx, []string{dir})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.md"),
			filepath.Join(dir, "docs", "b.md"),
			filepath.Join(dir, "docs", "c.txt"),
		}, files, "hidden directories should be skipped")
	})

	t.Run("doublestar_pattern", func(t *testing.T) {
		files, err := src.List(ctx, []string{filepath.Join(dir, "**", "*.md")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "a.md"),
			filepath.Join(dir, "docs", "b.md"),
		}, files)
	})

	t.Run("duplicates_are_dropped", func(t *testing.T) {
		files, err := src.List(ctx, []string{filepath.Join(dir, "docs", "c.txt"), filepath.Join(dir, "docs")})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "docs", "c.txt"),
			filepath.Join(dir, "docs", "b.md"),
		}, files)
	})

	t.Run("no_match", func(t *testing.T) {
		files, err := src.List(ctx, []string{filepath.Join(dir, "*.go")})
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestLocalOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	writeFile(t, path, "hello")

	rc, err := NewLocal().Open(context.Background(), path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = NewLocal().Open(context.Background(), filepath.Join(dir, "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening")
}
