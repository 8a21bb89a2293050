package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-yaml"
)

// Interface converts the tree to plain Go values (map[string]any, []any and
// scalars). Key order is lost.
func (n *Node) Interface() any {
	switch n.Kind {
	case KindMapping:
		out := make(map[string]any, len(n.Pairs))
		for _, pair := range n.Pairs {
			out[pair.Key] = pair.Value.Interface()
		}
		return out
	case KindSequence:
		out := make([]any, len(n.Items))
		for i, item := range n.Items {
			out[i] = item.Interface()
		}
		return out
	default:
		return n.Value
	}
}

// MarshalYAML keeps mapping order by handing the encoder a yaml.MapSlice.
func (n *Node) MarshalYAML() (any, error) {
	return n.yamlValue(), nil
}

func (n *Node) yamlValue() any {
	switch n.Kind {
	case KindMapping:
		out := make(yaml.MapSlice, 0, len(n.Pairs))
		for _, pair := range n.Pairs {
			out = append(out, yaml.MapItem{Key: pair.Key, Value: pair.Value.yamlValue()})
		}
		return out
	case KindSequence:
		out := make([]any, len(n.Items))
		for i, item := range n.Items {
			out[i] = item.yamlValue()
		}
		return out
	default:
		return n.Value
	}
}

// MarshalJSON writes mappings in document order. Non-finite floats have no
// JSON form and are written as strings.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	switch n.Kind {
	case KindMapping:
		buf.WriteByte('{')
		for i, pair := range n.Pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, pair.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := pair.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return n.writeJSONScalar(buf)
	}
	return nil
}

func (n *Node) writeJSONScalar(buf *bytes.Buffer) error {
	switch n.Scalar {
	case ScalarString:
		return writeJSONString(buf, n.Text)
	case ScalarFloat:
		if f, ok := n.Value.(float64); !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return writeJSONString(buf, n.Text)
		}
		buf.WriteString(n.Text)
	default:
		buf.WriteString(n.Text)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Encode writes node to w as YAML or JSON. FormatAuto selects YAML.
func Encode(w io.Writer, node *Node, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}

	out, err := yaml.MarshalWithOptions(node, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}
