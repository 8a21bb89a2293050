package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/yamlgrep/internal/stack"
)

// jsonFrame tracks an open container while tokens stream in.
type jsonFrame struct {
	node    *Node
	mapping *mappingBuilder
	key     string
	needKey bool
}

// parseJSON builds the tree straight from the decoder's token stream so key
// order survives; decoding into map[string]any would lose it.
func parseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	frames := stack.New[*jsonFrame]()
	var root *Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %v", ErrLoad, err)
		}

		if ref := frames.Top(); ref != nil {
			top := *ref

			if top.needKey {
				if d, ok := tok.(json.Delim); ok && d == '}' {
					frames.Pop()
					continue
				}
				key, ok := tok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: invalid JSON: object key must be a string", ErrLoad)
				}
				top.key = key
				top.needKey = false
				continue
			}

			if d, ok := tok.(json.Delim); ok && d == ']' {
				frames.Pop()
				continue
			}
		} else if root != nil {
			return nil, fmt.Errorf("%w: invalid JSON: unexpected data after top-level value", ErrLoad)
		}

		node, frame, err := jsonNode(tok)
		if err != nil {
			return nil, err
		}

		if ref := frames.Top(); ref != nil {
			top := *ref
			if top.mapping != nil {
				top.mapping.set(top.key, node)
				top.needKey = true
			} else {
				top.node.Items = append(top.node.Items, node)
			}
		} else {
			root = node
		}

		if frame != nil {
			frames.Push(frame)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: invalid JSON: empty input", ErrLoad)
	}
	if !frames.IsEmpty() {
		return nil, fmt.Errorf("%w: invalid JSON: unexpected end of input", ErrLoad)
	}

	return root, nil
}

func jsonNode(tok json.Token) (*Node, *jsonFrame, error) {
	switch value := tok.(type) {
	case json.Delim:
		node := &Node{}
		switch value {
		case '{':
			return node, &jsonFrame{node: node, mapping: newMappingBuilder(node, 0), needKey: true}, nil
		case '[':
			node.Kind = KindSequence
			node.Items = []*Node{}
			return node, &jsonFrame{node: node}, nil
		default:
			return nil, nil, fmt.Errorf("%w: invalid JSON: unexpected %q", ErrLoad, value)
		}
	default:
		node := &Node{}
		if err := node.setScalar(value); err != nil {
			return nil, nil, err
		}
		return node, nil, nil
	}
}
