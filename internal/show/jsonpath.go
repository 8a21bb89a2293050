package show

import (
	"fmt"

	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"

	"github.com/jacoelho/yamlgrep/internal/document"
	"github.com/jacoelho/yamlgrep/internal/pointer"
)

// selectJSONPath evaluates an RFC 9535 query. The query runs over a plain
// Go copy of the tree, then every located node is resolved again on the
// ordered tree through its normalized path so output keeps document order.
func selectJSONPath(root *document.Node, expr string) ([]Result, error) {
	query, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrInvalidPath, expr, err)
	}

	located := query.SelectLocated(root.Interface())
	if len(located) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoResults, expr)
	}

	results := make([]Result, 0, len(located))
	for _, ln := range located {
		path := fromNormalized(ln.Path)
		node, err := Resolve(root, path)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Path: path, Node: node})
	}

	return results, nil
}

func fromNormalized(np spec.NormalizedPath) pointer.Path {
	path := make(pointer.Path, 0, len(np))
	for _, sel := range np {
		switch s := sel.(type) {
		case spec.Name:
			path = append(path, pointer.Key(string(s)))
		case spec.Index:
			path = append(path, pointer.Index(int(s)))
		}
	}
	return path
}
