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

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/segrep/pkg/needle"
	"github.com/walteh/segrep/pkg/replace"
	"github.com/walteh/segrep/pkg/segment"
)

func testConfig() *Config {
	return &Config{Rules: []Rule{
		{Name: "flavour", Literal: "vanilla", Replace: ptr("magic")},
		{Name: "fish", Pattern: "(crab|shark)", Replace: ptr("<b>$1</b>"), Files: []string{"**/*.md"}},
		{Name: "go", Literal: "package", Replace: ptr("pkg"), Files: []string{"*.go", "cmd/**/*.go"}},
	}}
}

func names(rules []Rule) []string {
	var out []string
	for _, r := range rules {
		out = append(out, r.Name)
	}
	return out
}

func TestRulesFor(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "markdown_in_dir", path: "docs/a.md", want: []string{"flavour", "fish"}},
		{name: "markdown_at_root", path: "README.md", want: []string{"flavour", "fish"}},
		{name: "dot_slash_prefix", path: "./docs/a.md", want: []string{"flavour", "fish"}},
		{name: "absolute_path", path: "/work/docs/a.md", want: []string{"flavour", "fish"}},
		{name: "root_go_file", path: "main.go", want: []string{"flavour", "go"}},
		{name: "nested_cmd_go_file", path: "cmd/segrep/main.go", want: []string{"flavour", "go"}},
		{name: "nested_pkg_go_file", path: "pkg/x/x.go", want: []string{"flavour"}},
		{name: "other_file", path: "notes.txt", want: []string{"flavour"}},
	}

	cfg := testConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(cfg.RulesFor(tt.path)))
		})
	}
}

func TestPipeline(t *testing.T) {
	cfg := testConfig()

	pipeline, err := cfg.Pipeline("docs/a.md", needle.Stdlib)
	require.NoError(t, err)
	require.Len(t, pipeline, 2)
	assert.Equal(t, needle.KindLiteral, pipeline[0].Needle.Kind())
	assert.Equal(t, needle.KindPattern, pipeline[1].Needle.Kind())

	segs, err := pipeline.Run(segment.FromString[Replacement]("Vanilla crab and shark"), replace.WithEngine(needle.Stdlib))
	require.NoError(t, err)

	want := []segment.Segment[Replacement]{
		segment.Value(Replacement{Rule: "flavour", Needle: "vanilla", Key: "0-0", Match: "Vanilla", Text: "magic"}),
		segment.Text[Replacement](" "),
		segment.Value(Replacement{Rule: "fish", Needle: "(crab|shark)", Key: "1-0", Match: "crab", Text: "<b>crab</b>"}),
		segment.Text[Replacement](" and "),
		segment.Value(Replacement{Rule: "fish", Needle: "(crab|shark)", Key: "1-1", Match: "shark", Text: "<b>shark</b>"}),
	}
	assert.Equal(t, want, segs)
}

func TestPipelineCoregex(t *testing.T) {
	cfg := testConfig()

	pipeline, err := cfg.Pipeline("docs/a.md", needle.Coregex)
	require.NoError(t, err)

	segs, err := pipeline.Run(segment.FromString[Replacement]("a shark"), replace.WithEngine(needle.Coregex))
	require.NoError(t, err)
	require.Len(t, segs, 2)

	v, ok := segs[1].Value()
	require.True(t, ok, "second segment should be a replacement")
	assert.Equal(t, "<b>shark</b>", v.Text)
	assert.Equal(t, "1-0", v.Key)
}

func TestPipelineNoRules(t *testing.T) {
	cfg := &Config{Rules: []Rule{
		{Name: "md", Literal: "x", Replace: ptr("y"), Files: []string{"**/*.md"}},
	}}

	pipeline, err := cfg.Pipeline("main.go", needle.Stdlib)
	require.NoError(t, err)
	assert.Empty(t, pipeline, "no rule should apply")
}

func TestPipelineBadPattern(t *testing.T) {
	cfg := &Config{Rules: []Rule{{Name: "bad", Pattern: "(", Replace: ptr("y")}}}

	_, err := cfg.Pipeline("a.txt", needle.Stdlib)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building rule bad")
}

func TestExpand(t *testing.T) {
	rule := Rule{Name: "fish", Pattern: "(cr)(ab)?(x)?"}
	meta := replace.Meta{
		Match: replace.Match{
			Text:    "crab",
			Groups:  []string{"crab", "cr", "ab", ""},
			Indices: []int{2, 6, 2, 4, 4, 6, -1, -1},
			Input:   "a crab",
		},
		NeedleIndex: 1,
		MatchIndex:  3,
		Key:         "1-3",
	}

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{name: "plain", tmpl: "fish", want: "fish"},
		{name: "empty", tmpl: "", want: ""},
		{name: "full_match", tmpl: "<b>$0</b>", want: "<b>crab</b>"},
		{name: "match_name", tmpl: "${match}!", want: "crab!"},
		{name: "groups", tmpl: "$2-$1", want: "ab-cr"},
		{name: "braced_group", tmpl: "${1}x", want: "crx"},
		{name: "unmatched_group", tmpl: "[$3]", want: "[]"},
		{name: "out_of_range_group", tmpl: "[${9}]", want: "[]"},
		{name: "occurrence", tmpl: "${rule}:${key}:${index}", want: "fish:1-3:3"},
		{name: "needle", tmpl: "${needle}", want: "(cr)(ab)?(x)?"},
		{name: "dollar_escape", tmpl: "$$5", want: "$5"},
		{name: "unknown_name", tmpl: "a${nope}b", want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.tmpl, rule, meta))
		})
	}
}

func TestLoadedPipeline(t *testing.T) {
	cfg, err := (&HCLParser{}).Parse(context.Background(), "rules.hcl", []byte(hclRules))
	require.NoError(t, err)

	engine, err := cfg.PatternEngine()
	require.NoError(t, err)
	assert.Equal(t, "coregex", engine.Name())

	pipeline, err := cfg.Pipeline("notes.md", engine)
	require.NoError(t, err)

	segs, err := pipeline.Run(segment.FromString[Replacement]("vanilla shark"), replace.WithEngine(engine))
	require.NoError(t, err)

	out := ""
	for _, s := range segs {
		out += s.String()
	}
	assert.Equal(t, "magic <b>shark</b>", out)
}
