// Package search walks a document tree in document order and yields every
// occurrence of a pattern set in its keys and scalar values.
package search

import (
	"iter"

	"github.com/jacoelho/yamlgrep/internal/document"
	"github.com/jacoelho/yamlgrep/internal/pattern"
	"github.com/jacoelho/yamlgrep/internal/pointer"
)

// Location tells whether a match was found in a mapping key or a value.
type Location int

const (
	InKey Location = iota
	InValue
)

func (l Location) String() string {
	if l == InKey {
		return "key"
	}
	return "value"
}

// Match is one key or value in which the pattern set matched. It holds no
// reference into the tree, so the tree can be dropped once the search is
// done.
type Match struct {
	Path pointer.Path
	In   Location
	// Text is the whole key or canonical value text.
	Text string
	// Spans are every occurrence in Text, ordered and non-overlapping.
	Spans []pattern.Span
}

// Matched returns the matched substrings in order.
func (m Match) Matched() []string {
	out := make([]string, len(m.Spans))
	for i, span := range m.Spans {
		out[i] = m.Text[span.Start:span.End]
	}
	return out
}

// Options holds optional hooks for Search.
type Options struct {
	// Visit, when set, is called once for every node as it is reached.
	// It is an instrumentation hook (coverage, early-stop checks); the path
	// it receives is only valid during the call.
	Visit func(pointer.Path, *document.Node)
}

// Search returns a lazy sequence of matches in pre-order document order,
// one per matching key or scalar value. Each call walks the tree again from
// the root. The walk stops as soon as the consumer stops ranging.
func Search(root *document.Node, set *pattern.Set, opts Options) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		target := set.Target()

		for path, node := range Walk(root) {
			if opts.Visit != nil {
				opts.Visit(path, node)
			}

			if target.Keys() {
				if seg, ok := path.Last(); ok && !seg.IsIndex {
					if !emit(yield, set, path, InKey, seg.Key) {
						return
					}
				}
			}

			if target.Values() && node.Kind == document.KindScalar {
				if !emit(yield, set, path, InValue, node.Text) {
					return
				}
			}
		}
	}
}

// emit yields a record when text matches. The walk reuses its path buffer,
// so the record gets its own copy.
func emit(yield func(Match) bool, set *pattern.Set, path pointer.Path, in Location, text string) bool {
	spans := set.Find(text)
	if len(spans) == 0 {
		return true
	}
	return yield(Match{Path: path.Clone(), In: in, Text: text, Spans: spans})
}
