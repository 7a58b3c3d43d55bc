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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRules = `
rule "flavour" {
  literal = "vanilla"
  replace = "magic"
}

rule "fish" {
  pattern = "(crab|shark)"
  replace = "<b>$1</b>"
  files   = ["**/*.md"]
}
`

type fixture struct {
	rules string
	docs  string
	a     string
	b     string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		rules: filepath.Join(t.TempDir(), "rules.hcl"),
		docs:  t.TempDir(),
	}
	f.a = filepath.Join(f.docs, "docs", "a.md")
	f.b = filepath.Join(f.docs, "b.txt")

	require.NoError(t, os.WriteFile(f.rules, []byte(testRules), 0644))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.a), 0755))
	require.NoError(t, os.WriteFile(f.a, []byte("vanilla crab\n"), 0644))
	require.NoError(t, os.WriteFile(f.b, []byte("nothing here\n"), 0644))
	return f
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestApplyText(t *testing.T) {
	f := newFixture(t)

	stdout, stderr, err := execute(t, "apply", "-c", f.rules, f.docs)
	require.NoError(t, err)

	assert.Contains(t, stdout, "==> "+f.a+" <==\nmagic <b>crab</b>\n", "modified document should be printed")
	assert.Contains(t, stdout, "==> "+f.b+" <==\nnothing here\n", "unchanged document should be printed")
	assert.Contains(t, stderr, "2 replacements across 2 documents")

	data, err := os.ReadFile(f.a)
	require.NoError(t, err)
	assert.Equal(t, "vanilla crab\n", string(data), "files should not change without --write")
}

func TestApplySingleDocument(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := execute(t, "apply", "-c", f.rules, f.a)
	require.NoError(t, err)
	assert.Equal(t, "magic <b>crab</b>\n", stdout, "a single document should print without a header")
}

func TestApplyWrite(t *testing.T) {
	f := newFixture(t)

	stdout, stderr, err := execute(t, "apply", "-c", f.rules, "--write", f.docs)
	require.NoError(t, err)
	assert.Empty(t, stdout, "nothing should be printed when writing")
	assert.Contains(t, stderr, "written")

	data, err := os.ReadFile(f.a)
	require.NoError(t, err)
	assert.Equal(t, "magic <b>crab</b>\n", string(data))

	data, err = os.ReadFile(f.b)
	require.NoError(t, err)
	assert.Equal(t, "nothing here\n", string(data))
}

func TestApplyJSON(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := execute(t, "apply", "-c", f.rules, "--format", "json", f.a)
	require.NoError(t, err)

	var docs []struct {
		Path         string            `json:"path"`
		Source       string            `json:"source"`
		Replacements int               `json:"replacements"`
		Segments     []json.RawMessage `json:"segments"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, f.a, docs[0].Path)
	assert.Equal(t, "local", docs[0].Source)
	assert.Equal(t, 2, docs[0].Replacements)
	require.Len(t, docs[0].Segments, 4)
	assert.JSONEq(t, `{"value": {"rule": "fish", "needle": "(crab|shark)", "key": "1-0", "match": "crab", "text": "<b>crab</b>"}}`, string(docs[0].Segments[2]))
}

func TestApplyDiff(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := execute(t, "apply", "-c", f.rules, "--format", "diff", "--engine", "coregex", f.docs)
	require.NoError(t, err)
	assert.Equal(t, "--- "+f.a+"\n+++ "+f.a+"\n-vanilla crab\n+magic <b>crab</b>\n", stdout, "only modified documents should be diffed")
}

func TestApplyNoDocuments(t *testing.T) {
	f := newFixture(t)

	stdout, stderr, err := execute(t, "apply", "-c", f.rules, filepath.Join(f.docs, "*.go"))
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no documents matched")
}

func TestApplyWarnsAboutUnusedRules(t *testing.T) {
	f := newFixture(t)
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte(`
rules:
  - name: flavour
    literal: vanilla
    replace: magic
  - name: rust
    literal: crab
    replace: ferris
    files: ["**/*.rs"]
`), 0644))

	_, stderr, err := execute(t, "apply", "-c", rules, f.docs)
	require.NoError(t, err)
	assert.Contains(t, stderr, `rule "rust" applies to none of the 2 documents`)
	assert.NotContains(t, stderr, `rule "flavour" applies`)
}

func TestApplyErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "unknown_format",
			args:        []string{"apply", "-c", f.rules, "--format", "xml"},
			errContains: "format xml not found",
		},
		{
			name:        "write_with_remote",
			args:        []string{"apply", "-c", f.rules, "--write", "--remote", "github.com/walteh/segrep"},
			errContains: "--write is not supported with --remote",
		},
		{
			name:        "write_with_json",
			args:        []string{"apply", "-c", f.rules, "--write", "--format", "json"},
			errContains: "--write is only supported with the text format",
		},
		{
			name:        "zero_jobs",
			args:        []string{"apply", "-c", f.rules, "--jobs", "0"},
			errContains: "--jobs must be at least 1",
		},
		{
			name:        "missing_config",
			args:        []string{"apply", "-c", filepath.Join(f.docs, "missing.hcl")},
			errContains: "loading config",
		},
		{
			name:        "unknown_engine",
			args:        []string{"apply", "-c", f.rules, "--engine", "pcre", f.docs},
			errContains: "engine pcre not found",
		},
		{
			name:        "unknown_remote_host",
			args:        []string{"apply", "-c", f.rules, "--remote", "gitlab.com/org/repo"},
			errContains: "provider gitlab.com not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestCheck(t *testing.T) {
	f := newFixture(t)

	_, stderr, err := execute(t, "check", "-c", f.rules)
	require.NoError(t, err)
	assert.Contains(t, stderr, `fish: pattern "(crab|shark)" -> "<b>$1</b>" (**/*.md)`)
	assert.Contains(t, stderr, `flavour: literal "vanilla" -> "magic" (all files)`)
	assert.Contains(t, stderr, "is valid (2 rules, engine stdlib)")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules:\n  - name: x\n    pattern: \"x+\"\n    replace: y\n"), 0644))
	_, _, err = execute(t, "check", "-c", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture group")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "segrep version info")
	assert.Contains(t, stdout, "Go:")

	info := GetVersionInfo()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.Platform)
}
