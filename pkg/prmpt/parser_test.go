package prmpt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lit(value string, line int) *Literal {
	return &Literal{Value: value, Line: line}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected Sequence
	}{
		{
			name:     "empty",
			source:   "",
			expected: Sequence{},
		},
		{
			name:     "literals",
			source:   "a b",
			expected: Sequence{lit("a", 1), lit("b", 1)},
		},
		{
			name:     "no arguments",
			source:   `\f`,
			expected: Sequence{&Invocation{Name: "f", Line: 1}},
		},
		{
			name:   "empty required argument",
			source: `\f{}`,
			expected: Sequence{
				&Invocation{Name: "f", Args: []Sequence{{}}, Line: 1},
			},
		},
		{
			name:   "empty optional argument",
			source: `\f[]`,
			expected: Sequence{
				&Invocation{Name: "f", OptArgs: []Sequence{{}}, Line: 1},
			},
		},
		{
			name:   "interleaved arguments keep order per kind",
			source: `\f{a}[b]{c}[d]`,
			expected: Sequence{
				&Invocation{
					Name:    "f",
					Args:    []Sequence{{lit("a", 1)}, {lit("c", 1)}},
					OptArgs: []Sequence{{lit("b", 1)}, {lit("d", 1)}},
					Line:    1,
				},
			},
		},
		{
			name:   "whitespace before argument",
			source: `\f {a}`,
			expected: Sequence{
				&Invocation{Name: "f", Args: []Sequence{{lit("a", 1)}}, Line: 1},
			},
		},
		{
			name:   "nested invocation",
			source: `x \g{y \h[z]} w`,
			expected: Sequence{
				lit("x", 1),
				&Invocation{
					Name: "g",
					Args: []Sequence{{
						lit("y", 1),
						&Invocation{Name: "h", OptArgs: []Sequence{{lit("z", 1)}}, Line: 1},
					}},
					Line: 1,
				},
				lit("w", 1),
			},
		},
		{
			name:   "unclosed argument ends at end of input",
			source: `\f{a \g{b`,
			expected: Sequence{
				&Invocation{
					Name: "f",
					Args: []Sequence{{
						lit("a", 1),
						&Invocation{Name: "g", Args: []Sequence{{lit("b", 1)}}, Line: 1},
					}},
					Line: 1,
				},
			},
		},
		{
			name:   "mismatched closer still closes",
			source: `\f{a] b`,
			expected: Sequence{
				&Invocation{Name: "f", Args: []Sequence{{lit("a", 1)}}, Line: 1},
				lit("b", 1),
			},
		},
		{
			name:     "stray closer ends the script",
			source:   "a } b",
			expected: Sequence{lit("a", 1)},
		},
		{
			name:     "stray opener is literal",
			source:   "a { b",
			expected: Sequence{lit("a", 1), lit("{", 1), lit("b", 1)},
		},
		{
			name:     "backslash at end of input",
			source:   `a \`,
			expected: Sequence{lit("a", 1), &Invocation{Line: 1}},
		},
		{
			name:   "line numbers",
			source: "a % first\n\n\\f{\nb}",
			expected: Sequence{
				lit("a", 1),
				&Invocation{Name: "f", Args: []Sequence{{lit("b", 4)}}, Line: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.source)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.source, diff)
			}
		})
	}
}

func TestParseDistinguishesEmptyArgs(t *testing.T) {
	bare := Parse(`\f`)[0].(*Invocation)
	empty := Parse(`\f{}`)[0].(*Invocation)

	if bare.Args != nil {
		t.Errorf("Expected nil Args for \\f, got %#v", bare.Args)
	}
	if len(empty.Args) != 1 || empty.Args[0] == nil || len(empty.Args[0]) != 0 {
		t.Errorf("Expected one empty Sequence for \\f{}, got %#v", empty.Args)
	}
	if cmp.Equal(bare, empty) {
		t.Error("Expected \\f and \\f{} to parse differently")
	}
}

func TestSequenceString(t *testing.T) {
	source := `a \f{b \g}[c] d`
	if got := Parse(source).String(); got != source {
		t.Errorf("Expected %q, got %q", source, got)
	}
}
