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
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/segrep/pkg/needle"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for rules file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes. filename is only used in messages.
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📏 Rule is one ordered replacement rule
type Rule struct {
	Name    string   `json:"name" yaml:"name" hcl:"name,label"`
	Literal string   `json:"literal,omitempty" yaml:"literal,omitempty" hcl:"literal,optional"` // Case-insensitive literal needle
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"` // Pattern needle, needs a capture group
	Replace *string  `json:"replace" yaml:"replace" hcl:"replace,optional"`                     // Replacement template, may be empty
	Files   []string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"`       // Doublestar globs, empty means every file
}

// 📚 Config is a complete rules file
type Config struct {
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty" hcl:"engine,optional"`
	Rules  []Rule `json:"rules" yaml:"rules" hcl:"rule,block"`

	location string
}

// 🎯 Load loads the rules file at path
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rules")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	logger.Debug().Str("path", path).Int("rules", len(cfg.Rules)).Str("engine", cfg.EngineName()).Msg("rules loaded")

	return cfg, nil
}

// Location is the path the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the engine, every rule and every glob
func (cfg *Config) Validate() error {
	engine, err := needle.ParseEngine(cfg.Engine)
	if err != nil {
		return errors.Errorf("engine: %w", err)
	}

	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	names := make(map[string]int, len(cfg.Rules))
	for i, r := range cfg.Rules {
		if r.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if prev, ok := names[r.Name]; ok {
			return errors.Errorf("rule %d: name %q already used by rule %d", i, r.Name, prev)
		}
		names[r.Name] = i

		switch {
		case r.Literal == "" && r.Pattern == "":
			return errors.Errorf("rule %d (%s): one of literal or pattern is required", i, r.Name)
		case r.Literal != "" && r.Pattern != "":
			return errors.Errorf("rule %d (%s): literal and pattern are mutually exclusive", i, r.Name)
		}

		if r.Replace == nil {
			return errors.Errorf("rule %d (%s): replace is required", i, r.Name)
		}

		if _, err := r.Matcher(engine); err != nil {
			return errors.Errorf("rule %d (%s): %w", i, r.Name, err)
		}

		for _, glob := range r.Files {
			if !doublestar.ValidatePattern(glob) {
				return errors.Errorf("rule %d (%s): invalid files glob %q", i, r.Name, glob)
			}
		}
	}

	return nil
}

// EngineName is the configured engine, defaulting to stdlib
func (cfg *Config) EngineName() string {
	if strings.TrimSpace(cfg.Engine) == "" {
		return needle.Stdlib.Name()
	}
	return strings.ToLower(strings.TrimSpace(cfg.Engine))
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s (%d rules, engine %s)", cfg.location, len(cfg.Rules), cfg.EngineName())
}

// Needle builds the rule's needle, compiling patterns with engine
func (r Rule) Needle(engine needle.Engine) (needle.Needle, error) {
	if r.Pattern != "" {
		n, err := needle.Compile(r.Pattern, engine)
		if err != nil {
			return needle.Needle{}, err
		}
		return n, nil
	}
	return needle.Literal(r.Literal), nil
}

// Matcher builds the rule's needle and resolves it into a matcher
func (r Rule) Matcher(engine needle.Engine) (needle.Matcher, error) {
	n, err := r.Needle(engine)
	if err != nil {
		return nil, err
	}
	return n.Matcher(engine)
}

// 🔍 Applies reports whether the rule's files globs match path
func (r Rule) Applies(path string) bool {
	if len(r.Files) == 0 {
		return true
	}
	p := cleanPath(path)
	for _, glob := range r.Files {
		if ok, _ := doublestar.Match(glob, p); ok {
			return true
		}
	}
	return false
}

// Kind is "literal" or "pattern"
func (r Rule) Kind() string {
	if r.Pattern != "" {
		return needle.KindPattern.String()
	}
	return needle.KindLiteral.String()
}

// Expr is the literal text or pattern source
func (r Rule) Expr() string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return r.Literal
}
