// Package pattern compiles the user supplied regular expressions and finds
// their occurrences in key and value text.
package pattern

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
)

var (
	// ErrCompile is returned when an expression is not a valid regular expression.
	ErrCompile = errors.New("invalid pattern")
	// ErrNoPatterns is returned when Compile receives no expressions.
	ErrNoPatterns = errors.New("no patterns provided")
)

// Target selects which parts of the document are matched.
type Target int

const (
	TargetBoth Target = iota
	TargetKeys
	TargetValues
)

func (t Target) String() string {
	switch t {
	case TargetKeys:
		return "keys"
	case TargetValues:
		return "values"
	default:
		return "both"
	}
}

// Keys reports whether mapping keys are matched.
func (t Target) Keys() bool { return t != TargetValues }

// Values reports whether scalar values are matched.
func (t Target) Values() bool { return t != TargetKeys }

// Options configures Compile.
type Options struct {
	CaseInsensitive bool
	Target          Target
}

// Span is one occurrence: text[Start:End] matched the expression at index
// Pattern of the input list.
type Span struct {
	Start   int
	End     int
	Pattern int
}

// Set is an immutable list of compiled expressions.
type Set struct {
	exprs  []*regexp.Regexp
	target Target
}

// Compile compiles every expression or fails on the first invalid one.
func Compile(exprs []string, opts Options) (*Set, error) {
	if len(exprs) == 0 {
		return nil, ErrNoPatterns
	}

	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for i, expr := range exprs {
		source := expr
		if opts.CaseInsensitive {
			source = "(?i)" + expr
		}

		re, err := regexp.Compile(source)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %d %q: %v", ErrCompile, i+1, expr, err)
		}
		compiled = append(compiled, re)
	}

	return &Set{exprs: compiled, target: opts.Target}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(opts Options, exprs ...string) *Set {
	set, err := Compile(exprs, opts)
	if err != nil {
		panic(err)
	}
	return set
}

func (s *Set) Target() Target {
	return s.target
}

func (s *Set) Len() int {
	return len(s.exprs)
}

// Find returns the occurrences of all expressions in text, ordered by start
// offset with ties going to the earlier expression. An occurrence that
// overlaps one already accepted is dropped, so the result never overlaps.
func (s *Set) Find(text string) []Span {
	var all []Span
	for i, re := range s.exprs {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			all = append(all, Span{Start: loc[0], End: loc[1], Pattern: i})
		}
	}
	if len(all) <= 1 {
		return all
	}

	slices.SortStableFunc(all, func(a, b Span) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Pattern, b.Pattern)
	})

	out := all[:1]
	for _, span := range all[1:] {
		if span.Start < out[len(out)-1].End {
			continue
		}
		out = append(out, span)
	}
	return out
}
