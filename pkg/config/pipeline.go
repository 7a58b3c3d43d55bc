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
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/walteh/segrep/pkg/needle"
	"github.com/walteh/segrep/pkg/replace"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Replacement is the value a rule leaves in place of one match
type Replacement struct {
	Rule   string `json:"rule"`   // Rule name
	Needle string `json:"needle"` // Literal text or pattern source
	Key    string `json:"key"`    // "{needleIndex}-{matchIndex}" within the file's pipeline
	Match  string `json:"match"`  // Matched text
	Text   string `json:"text"`   // Expanded replacement template
}

// String returns the replacement text
func (r Replacement) String() string {
	return r.Text
}

// PatternEngine resolves the configured engine
func (cfg *Config) PatternEngine() (needle.Engine, error) {
	return needle.ParseEngine(cfg.Engine)
}

// 🔍 RulesFor returns the rules that apply to path, in file order
func (cfg *Config) RulesFor(path string) []Rule {
	var rules []Rule
	for _, r := range cfg.Rules {
		if r.Applies(path) {
			rules = append(rules, r)
		}
	}
	return rules
}

// 🏭 Pipeline builds the replacement pipeline for the rules that apply to
// path. Patterns are compiled with engine. An empty pipeline means no rule
// applies.
func (cfg *Config) Pipeline(path string, engine needle.Engine) (replace.Pipeline[Replacement], error) {
	rules := cfg.RulesFor(path)
	pipeline := make(replace.Pipeline[Replacement], 0, len(rules))
	for _, r := range rules {
		n, err := r.Needle(engine)
		if err != nil {
			return nil, errors.Errorf("building rule %s: %w", r.Name, err)
		}
		pipeline = append(pipeline, replace.Pair[Replacement]{
			Needle:   n,
			Replacer: r.Replacer(),
		})
	}
	return pipeline, nil
}

// 🔄 Replacer returns the replacer that expands the rule's template for every match
func (r Rule) Replacer() replace.Replacer[Replacement] {
	tmpl := ""
	if r.Replace != nil {
		tmpl = *r.Replace
	}
	return func(match string, meta replace.Meta) Replacement {
		return Replacement{
			Rule:   r.Name,
			Needle: r.Expr(),
			Key:    meta.Key,
			Match:  match,
			Text:   Expand(tmpl, r, meta),
		}
	}
}

// 📝 Expand fills a replacement template for one match.
//
// $0 and ${match} are the full match, $1 to $9 (or ${n}) the capture groups,
// ${key}, ${rule}, ${needle} and ${index} describe the occurrence and $$ is a
// dollar sign. Unknown names and groups that did not take part expand to "".
func Expand(tmpl string, r Rule, meta replace.Meta) string {
	if !strings.Contains(tmpl, "$") {
		return tmpl
	}
	return os.Expand(tmpl, func(name string) string {
		switch name {
		case "$":
			return "$"
		case "match":
			return meta.Match.Text
		case "key":
			return meta.Key
		case "rule":
			return r.Name
		case "needle":
			return r.Expr()
		case "index":
			return strconv.Itoa(meta.MatchIndex)
		}
		i, err := strconv.Atoi(name)
		if err != nil {
			return ""
		}
		g, _ := meta.Match.Group(i)
		return g
	})
}

func cleanPath(p string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "/")
}
