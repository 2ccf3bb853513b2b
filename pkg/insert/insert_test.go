package insert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		rule        Rule
		want        []string
		wantAdded   []string
		wantAnchor  int
		wantMissing bool
	}{
		{
			name:  "inserts_after_anchor_in_reverse_order",
			lines: []string{"X {", "  foo: number;", "}"},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"  bar: number;", "  baz: number;"},
			},
			want:       []string{"X {", "  baz: number;", "  bar: number;", "  foo: number;", "}"},
			wantAdded:  []string{"  bar: number;", "  baz: number;"},
			wantAnchor: 0,
		},
		{
			name:  "anchor_is_case_insensitive",
			lines: []string{"// header", "export interface Profile {", "}"},
			rule: Rule{
				Anchor: "INTERFACE PROFILE",
				Lines:  []string{"  bio?: string;"},
			},
			want:       []string{"// header", "export interface Profile {", "  bio?: string;", "}"},
			wantAdded:  []string{"  bio?: string;"},
			wantAnchor: 1,
		},
		{
			name:  "partial_pre_existence",
			lines: []string{"X {", "  bar: number;", "}"},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"bar: number", "  baz: number;", "  qux: number;"},
			},
			want:       []string{"X {", "  qux: number;", "  baz: number;", "  bar: number;", "}"},
			wantAdded:  []string{"  baz: number;", "  qux: number;"},
			wantAnchor: 0,
		},
		{
			name:  "all_present",
			lines: []string{"X {", "  bar: number;", "  baz: number;", "}"},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"  bar: number;", "  baz: number;"},
			},
			want:       []string{"X {", "  bar: number;", "  baz: number;", "}"},
			wantAnchor: 0,
		},
		{
			name:  "first_anchor_wins",
			lines: []string{"X {", "}", "x {", "}"},
			rule: Rule{
				Anchor: "x {",
				Lines:  []string{"  a: 1;"},
			},
			want:       []string{"X {", "  a: 1;", "}", "x {", "}"},
			wantAdded:  []string{"  a: 1;"},
			wantAnchor: 0,
		},
		{
			name:  "presence_only_counts_lines_after_anchor",
			lines: []string{"  a: 1;", "X {", "}"},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"  a: 1;"},
			},
			want:       []string{"  a: 1;", "X {", "  a: 1;", "}"},
			wantAdded:  []string{"  a: 1;"},
			wantAnchor: 1,
		},
		{
			name:  "substring_of_unrelated_line_counts_as_present",
			lines: []string{"X {", "  idx: number;", "}"},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"id"},
			},
			want:       []string{"X {", "  idx: number;", "}"},
			wantAnchor: 0,
		},
		{
			name:  "duplicate_candidates_insert_once",
			lines: []string{"X {", "}"},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"  a: 1;", "  a: 1;"},
			},
			want:       []string{"X {", "  a: 1;", "}"},
			wantAdded:  []string{"  a: 1;"},
			wantAnchor: 0,
		},
		{
			name:  "anchor_on_last_line",
			lines: []string{"a", "X {"},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"one", "two"},
			},
			want:       []string{"a", "X {", "two", "one"},
			wantAdded:  []string{"one", "two"},
			wantAnchor: 1,
		},
		{
			name:  "anchor_missing",
			lines: []string{"Y {", "}"},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"  a: 1;"},
			},
			want:        []string{"Y {", "}"},
			wantAnchor:  -1,
			wantMissing: true,
		},
		{
			name:  "empty_file",
			lines: []string{""},
			rule: Rule{
				Anchor: "X {",
				Lines:  []string{"  a: 1;"},
			},
			want:        []string{""},
			wantAnchor:  -1,
			wantMissing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := append([]string(nil), tt.lines...)

			result, err := Apply(tt.lines, tt.rule)
			if tt.wantMissing {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrAnchorNotFound), "error should be ErrAnchorNotFound")
			} else {
				require.NoError(t, err)
			}

			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.Lines, "lines should match")
			assert.Equal(t, tt.wantAdded, result.Added, "added lines should match")
			assert.Equal(t, len(tt.wantAdded), result.Count(), "count should match")
			assert.Equal(t, tt.wantAnchor, result.AnchorIndex, "anchor index should match")
			assert.Equal(t, original, tt.lines, "input should not be modified")
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	lines := []string{"X {", "  foo: number;", "}"}
	rule := Rule{
		Anchor: "X {",
		Lines:  []string{"  bar: number;", "  baz: number;"},
	}

	first, err := Apply(lines, rule)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count())

	second, err := Apply(first.Lines, rule)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Count(), "second run should insert nothing")
	assert.Equal(t, first.Lines, second.Lines, "second run should not change content")
}

func TestApply_InsertionOrder(t *testing.T) {
	candidates := []string{"c1", "c2", "c3", "c4"}
	lines := []string{"before", "anchor line", "after"}

	result, err := Apply(lines, Rule{Anchor: "ANCHOR", Lines: candidates})
	require.NoError(t, err)

	k := result.AnchorIndex
	assert.Equal(t, candidates[len(candidates)-1], result.Lines[k+1], "last candidate should sit right after the anchor")
	assert.Equal(t, candidates[0], result.Lines[k+len(candidates)], "first candidate should be furthest from the anchor")
	assert.Equal(t, "after", result.Lines[len(result.Lines)-1], "unrelated lines keep their order")
}

func TestApplyString(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		rule      Rule
		want      string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "keeps_trailing_newline",
			content:   "X {\n  foo: number;\n}\n",
			rule:      Rule{Anchor: "X {", Lines: []string{"  bar: number;"}},
			want:      "X {\n  bar: number;\n  foo: number;\n}\n",
			wantCount: 1,
		},
		{
			name:      "no_trailing_newline",
			content:   "X {\n}",
			rule:      Rule{Anchor: "X {", Lines: []string{"  bar: number;"}},
			want:      "X {\n  bar: number;\n}",
			wantCount: 1,
		},
		{
			name:    "anchor_missing_returns_input",
			content: "Y {\n}\n",
			rule:    Rule{Anchor: "X {", Lines: []string{"  bar: number;"}},
			want:    "Y {\n}\n",
			wantErr: true,
		},
		{
			name:      "crlf_lines_are_plain_text",
			content:   "X {\r\n  bar: number;\r\n}\r\n",
			rule:      Rule{Anchor: "X {", Lines: []string{"  bar: number;", "  baz: number;"}},
			want:      "X {\r\n  baz: number;\n  bar: number;\r\n}\r\n",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, got, err := ApplyString(tt.content, tt.rule)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, result.Count())
		})
	}
}

func TestSplitJoinLines(t *testing.T) {
	for _, content := range []string{"", "\n", "a", "a\n", "a\nb", "a\n\nb\n\n"} {
		assert.Equal(t, content, JoinLines(SplitLines(content)), "round trip of %q", content)
	}
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\nb\n"))
}

func TestFindAnchor(t *testing.T) {
	lines := []string{"type A = {", "export INTERFACE B {", "interface b {"}
	assert.Equal(t, 1, FindAnchor(lines, "interface B"))
	assert.Equal(t, -1, FindAnchor(lines, "interface C"))
}

func TestContains(t *testing.T) {
	lines := []string{"foo", "X {", "bar"}
	assert.False(t, Contains(lines, 1, "foo"), "lines before the anchor are ignored")
	assert.True(t, Contains(lines, 1, "ar"))
	assert.False(t, Contains(lines, 2, "bar"), "the last line has nothing after it")
}
