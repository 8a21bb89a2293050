// Package show extracts the subtree at a literal path, or every node selected
// by a JSONPath query, and writes it back out as YAML or JSON.
package show

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jacoelho/yamlgrep/internal/document"
	"github.com/jacoelho/yamlgrep/internal/pointer"
)

// ErrInvalidPath is returned for paths that cannot be parsed or resolved.
var ErrInvalidPath = pointer.ErrInvalidPath

// ErrNoResults is returned when a JSONPath query selects nothing.
var ErrNoResults = errors.New("no nodes selected")

const maxKeyHint = 10

// Result is one selected subtree and where it was found.
type Result struct {
	Path pointer.Path
	Node *document.Node
}

// Select resolves expr against root. Expressions starting with '$' are
// JSONPath queries; anything else is a pointer or dot path.
func Select(root *document.Node, expr string) ([]Result, error) {
	if strings.HasPrefix(expr, "$") {
		return selectJSONPath(root, expr)
	}

	path, err := pointer.Parse(expr)
	if err != nil {
		return nil, err
	}

	node, err := Resolve(root, path)
	if err != nil {
		return nil, err
	}

	return []Result{{Path: path, Node: node}}, nil
}

// Resolve descends from root one segment at a time. A key segment made of
// digits is accepted as an index when the current node is a sequence.
func Resolve(root *document.Node, path pointer.Path) (*document.Node, error) {
	current := root

	for depth, seg := range path {
		at := pointer.Render(path[:depth], pointer.FormatPointer)

		switch current.Kind {
		case document.KindSequence:
			index, ok := sequenceIndex(seg)
			if !ok {
				return nil, fmt.Errorf("%w: expected sequence index at %s but got key %q", ErrInvalidPath, at, seg.Key)
			}
			if index >= len(current.Items) {
				return nil, fmt.Errorf("%w: index %d out of range at %s (len=%d)", ErrInvalidPath, index, at, len(current.Items))
			}
			current = current.Items[index]
		case document.KindMapping:
			next, ok := current.Get(seg.String())
			if !ok {
				return nil, fmt.Errorf("%w: key %q not found at %s%s", ErrInvalidPath, seg.String(), at, keyHint(current))
			}
			current = next
		default:
			return nil, fmt.Errorf("%w: cannot descend into non-container at %s (type=%s)", ErrInvalidPath, at, current.Scalar)
		}
	}

	return current, nil
}

func sequenceIndex(seg pointer.Segment) (int, bool) {
	if seg.IsIndex {
		return seg.Index, seg.Index >= 0
	}
	if seg.Key == "" {
		return 0, false
	}
	for i := 0; i < len(seg.Key); i++ {
		if seg.Key[i] < '0' || seg.Key[i] > '9' {
			return 0, false
		}
	}

	index, err := strconv.Atoi(seg.Key)
	if err != nil {
		return 0, false
	}
	return index, true
}

func keyHint(mapping *document.Node) string {
	keys := mapping.Keys()
	if len(keys) == 0 {
		return ""
	}

	more := ""
	if len(keys) > maxKeyHint {
		keys = keys[:maxKeyHint]
		more = "..."
	}

	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = strconv.Quote(k)
	}
	return fmt.Sprintf(" (available keys: %s%s)", strings.Join(quoted, ", "), more)
}

// Write encodes results. A single result is written as one document;
// several become a YAML stream or a JSON array.
func Write(w io.Writer, results []Result, format document.Format) error {
	if len(results) == 1 {
		return document.Encode(w, results[0].Node, format)
	}

	if format == document.FormatJSON {
		nodes := make([]*document.Node, len(results))
		for i, r := range results {
			nodes[i] = r.Node
		}
		return document.Encode(w, document.NewSequence(nodes...), format)
	}

	for i, r := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		if err := document.Encode(w, r.Node, format); err != nil {
			return err
		}
	}
	return nil
}
