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
	"strings"

	"github.com/walteh/ensurelines/pkg/insert"
	"gitlab.com/tozd/go/errors"
)

// DefaultConcurrency is the number of files processed at once in async mode
const DefaultConcurrency = 4

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

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

// 📌 Rule inserts Lines after the first line matching Anchor in every file
// matched by Files
type Rule struct {
	Files  []string `json:"files" yaml:"files"`   // Paths or doublestar globs
	Anchor string   `json:"anchor" yaml:"anchor"` // Case-insensitive substring
	Lines  []string `json:"lines" yaml:"lines"`   // Candidates, in order

	// Literal disables glob expansion of Files
	Literal bool `json:"-" yaml:"-"`
}

// InsertRule converts the rule for the insert package
func (r Rule) InsertRule() insert.Rule {
	return insert.Rule{
		Anchor: r.Anchor,
		Lines:  r.Lines,
	}
}

// 📚 Config represents the complete configuration
type Config struct {
	Rules       []Rule `json:"rules" yaml:"rules"`
	Backup      bool   `json:"backup,omitempty" yaml:"backup,omitempty"`
	Async       bool   `json:"async,omitempty" yaml:"async,omitempty"`
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`

	dir string
}

// Dir returns the directory relative file patterns resolve against
func (cfg *Config) Dir() string {
	if cfg.dir == "" {
		return "."
	}
	return cfg.dir
}

// 🏳️ FromFlags builds a single-rule config from command line values
func FromFlags(file, anchor string, lines []string) (*Config, error) {
	cfg := &Config{
		Rules: []Rule{
			{
				Files:   []string{file},
				Anchor:  anchor,
				Lines:   lines,
				Literal: true,
			},
		},
	}

	if file == "" {
		return nil, errors.Errorf("file is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	for i, rule := range cfg.Rules {
		if len(rule.Files) == 0 {
			return errors.Errorf("rule %d: files is required", i)
		}
		for j, f := range rule.Files {
			if strings.TrimSpace(f) == "" {
				return errors.Errorf("rule %d: files[%d] is empty", i, j)
			}
		}
		if rule.Anchor == "" {
			return errors.Errorf("rule %d: anchor is required", i)
		}
		if len(rule.Lines) == 0 {
			return errors.Errorf("rule %d: lines is required", i)
		}
		for j, line := range rule.Lines {
			if line == "" {
				return errors.Errorf("rule %d: lines[%d] is empty", i, j)
			}
		}
	}

	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative")
	}

	// Set defaults
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	parts := make([]string, 0, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		parts = append(parts, fmt.Sprintf("%s after %q -> %d line(s)", strings.Join(rule.Files, ","), rule.Anchor, len(rule.Lines)))
	}
	return strings.Join(parts, "; ")
}
