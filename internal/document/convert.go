package document

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/yamlgrep/internal/number"
	"github.com/jacoelho/yamlgrep/internal/stack"
)

type conversion struct {
	dst *Node
	src any
}

// FromValue builds a tree from decoded Go values: yaml.MapSlice, maps,
// slices and scalars. Plain Go maps have no order, so their keys are sorted.
// Conversion uses an explicit stack and tolerates arbitrary nesting.
func FromValue(v any) (*Node, error) {
	root := &Node{}
	work := stack.New[conversion]()
	work.Push(conversion{dst: root, src: v})

	for !work.IsEmpty() {
		task, _ := work.Pop()

		switch src := task.src.(type) {
		case yaml.MapSlice:
			b := newMappingBuilder(task.dst, len(src))
			for _, item := range src {
				key, err := KeyText(item.Key)
				if err != nil {
					return nil, err
				}
				child := &Node{}
				b.set(key, child)
				work.Push(conversion{dst: child, src: item.Value})
			}
		case map[string]any:
			b := newMappingBuilder(task.dst, len(src))
			for _, key := range sortedKeys(src) {
				child := &Node{}
				b.set(key, child)
				work.Push(conversion{dst: child, src: src[key]})
			}
		case map[any]any:
			b := newMappingBuilder(task.dst, len(src))
			keyed := make(map[string]any, len(src))
			for k, value := range src {
				key, err := KeyText(k)
				if err != nil {
					return nil, err
				}
				keyed[key] = value
			}
			for _, key := range sortedKeys(keyed) {
				child := &Node{}
				b.set(key, child)
				work.Push(conversion{dst: child, src: keyed[key]})
			}
		case []any:
			task.dst.Kind = KindSequence
			task.dst.Items = make([]*Node, len(src))
			for i, item := range src {
				child := &Node{}
				task.dst.Items[i] = child
				work.Push(conversion{dst: child, src: item})
			}
		default:
			if err := task.dst.setScalar(src); err != nil {
				return nil, err
			}
		}
	}

	return root, nil
}

// KeyText renders a mapping key with the same canonical form used for
// scalar values. Collection keys render as flow-style YAML.
func KeyText(key any) (string, error) {
	var n Node
	if err := n.setScalar(key); err == nil {
		return n.Text, nil
	}

	out, err := yaml.MarshalWithOptions(key, yaml.Flow(true))
	if err != nil {
		return "", fmt.Errorf("%w: unsupported mapping key %T: %v", ErrLoad, key, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (n *Node) setScalar(v any) error {
	n.Kind = KindScalar

	switch value := v.(type) {
	case nil:
		*n = *NewNull()
	case string:
		*n = *NewString(value)
	case bool:
		*n = *NewBool(value)
	case time.Time:
		*n = *NewString(value.Format(time.RFC3339Nano))
	default:
		if !n.setNumber(value) {
			return fmt.Errorf("%w: unsupported value of type %T", ErrLoad, v)
		}
	}

	return nil
}

func (n *Node) setNumber(v any) bool {
	text, integer, ok := number.Format(v)
	if !ok {
		return false
	}

	n.Kind = KindScalar
	n.Text = text
	if !integer {
		n.Scalar = ScalarFloat
		n.Value = parsedFloat(text)
		return true
	}

	n.Scalar = ScalarInt
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		n.Value = i
	} else if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		n.Value = u
	} else {
		n.Value = text
	}
	return true
}

func parsedFloat(text string) any {
	switch text {
	case "Infinity":
		text = "+Inf"
	case "-Infinity":
		text = "-Inf"
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return f
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
