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

package insert

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrAnchorNotFound is returned by Apply when no line matches the rule's anchor.
// It is an expected outcome, not a failure.
var ErrAnchorNotFound = errors.Base("anchor not found")

// Rule defines a single insertion
type Rule struct {
	// Anchor is matched case-insensitively as a substring of a line.
	// Only the first matching line is used.
	Anchor string

	// Lines are the candidates to insert directly after the anchor
	Lines []string
}

// Result contains the results of applying a rule
type Result struct {
	// AnchorIndex is the index of the anchor line, or -1 when it was not found
	AnchorIndex int

	// Added lists the candidates that were inserted, in processing order
	Added []string

	// Lines is the resulting line sequence
	Lines []string
}

// Count returns the number of inserted lines
func (r *Result) Count() int {
	return len(r.Added)
}

// SplitLines splits content on "\n". A trailing newline yields a trailing
// empty element so JoinLines gives back the exact input.
func SplitLines(content string) []string {
	return strings.Split(content, "\n")
}

// JoinLines is the inverse of SplitLines
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// FindAnchor returns the index of the first line containing anchor,
// ignoring case, or -1.
func FindAnchor(lines []string, anchor string) int {
	needle := strings.ToLower(anchor)
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			return i
		}
	}
	return -1
}

// Contains reports whether any line after index from contains candidate.
func Contains(lines []string, from int, candidate string) bool {
	for i := from + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], candidate) {
			return true
		}
	}
	return false
}

// Apply inserts each missing candidate of rule directly after the anchor line.
//
// Every insertion lands at anchor+1, so candidates inserted in one call end up
// in reverse order below the anchor. A candidate counts as present when any
// line after the anchor contains it, including lines inserted earlier in the
// same call. The input slice is not modified.
func Apply(lines []string, rule Rule) (*Result, error) {
	out := make([]string, len(lines), len(lines)+len(rule.Lines))
	copy(out, lines)

	anchor := FindAnchor(out, rule.Anchor)
	if anchor < 0 {
		return &Result{AnchorIndex: -1, Lines: out}, ErrAnchorNotFound
	}

	result := &Result{AnchorIndex: anchor}
	for _, candidate := range rule.Lines {
		if Contains(out, anchor, candidate) {
			continue
		}
		out = append(out, "")
		copy(out[anchor+2:], out[anchor+1:])
		out[anchor+1] = candidate
		result.Added = append(result.Added, candidate)
	}

	result.Lines = out
	return result, nil
}

// ApplyString is Apply over the lines of content
func ApplyString(content string, rule Rule) (*Result, string, error) {
	result, err := Apply(SplitLines(content), rule)
	if err != nil {
		return result, content, err
	}
	return result, JoinLines(result.Lines), nil
}
