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

package needle

import (
	"regexp"
	"regexp/syntax"
	"sort"
	"strings"
	"unicode"

	"github.com/coregx/coregex"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Engine compiles pattern source into a Matcher
type Engine interface {
	// Name returns the engine name used in config files and flags
	Name() string
	// Compile compiles expr
	Compile(expr string) (Matcher, error)
	// QuoteMeta escapes \ ^ $ . * + ? ( ) [ ] { } | in s
	QuoteMeta(s string) string
}

var (
	// Stdlib compiles with Go's regexp package
	Stdlib Engine = stdlibEngine{}
	// Coregex compiles with github.com/coregx/coregex
	Coregex Engine = coregexEngine{}
)

// 🗺️ engines maps names to the available engines
var engines = map[string]Engine{
	Stdlib.Name():  Stdlib,
	Coregex.Name(): Coregex,
}

// 🎯 ParseEngine returns the engine registered under name. An empty name selects Stdlib.
func ParseEngine(name string) (Engine, error) {
	if name == "" {
		return Stdlib, nil
	}
	e, ok := engines[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Errorf("engine %s not found, options: %s", name, strings.Join(EngineNames(), ", "))
	}
	return e, nil
}

// EngineNames lists the registered engine names, sorted
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type stdlibEngine struct{}

func (stdlibEngine) Name() string { return "stdlib" }

func (stdlibEngine) Compile(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("regexp: %w", err)
	}
	return re, nil
}

func (stdlibEngine) QuoteMeta(s string) string { return regexp.QuoteMeta(s) }

type coregexEngine struct{}

func (coregexEngine) Name() string { return "coregex" }

// Compile uses coregex unless the pattern relies on behavior coregex does not
// share with regexp, in which case it compiles with regexp instead.
func (coregexEngine) Compile(expr string) (Matcher, error) {
	if needsStdlib(expr) {
		return Stdlib.Compile(expr)
	}
	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("coregex: %w", err)
	}
	return re, nil
}

func (coregexEngine) QuoteMeta(s string) string { return coregex.QuoteMeta(s) }

// needsStdlib reports patterns coregex matches differently from regexp:
// multi-line anchors and case folding outside ASCII.
// Patterns that do not parse are left to coregex to report.
func needsStdlib(expr string) bool {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return false
	}
	return walkDiverges(re)
}

func walkDiverges(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpEndLine:
		return true
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			for _, r := range re.Rune {
				if foldsPastASCII(r) {
					return true
				}
			}
		}
	}
	for _, sub := range re.Sub {
		if walkDiverges(sub) {
			return true
		}
	}
	return false
}

// foldsPastASCII reports whether any case variant of r is outside ASCII
func foldsPastASCII(r rune) bool {
	if r > unicode.MaxASCII {
		return true
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f > unicode.MaxASCII {
			return true
		}
	}
	return false
}
