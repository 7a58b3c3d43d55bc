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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ Source = (*Local)(nil)

// 📂 Local reads documents from the filesystem
type Local struct{}

// NewLocal creates a filesystem source
func NewLocal() *Local {
	return &Local{}
}

// Name implements Source
func (l *Local) Name() string {
	return "local"
}

// 📂 List expands doublestar patterns into files. Directories are walked,
// skipping hidden directories. Results keep pattern order without duplicates.
func (l *Local) List(ctx context.Context, patterns []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("matching %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", pattern).Msg("pattern matched no files")
			continue
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				return nil, errors.Errorf("reading %s: %w", m, err)
			}
			if !info.IsDir() {
				add(m)
				continue
			}
			err = filepath.WalkDir(m, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if p != m && strings.HasPrefix(d.Name(), ".") {
						return filepath.SkipDir
					}
					return nil
				}
				if d.Type().IsRegular() {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, errors.Errorf("walking %s: %w", m, err)
			}
		}
	}

	logger.Debug().Int("files", len(files)).Strs("patterns", patterns).Msg("listed local files")
	return files, nil
}

// 📄 Open implements Source
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}
