// Package document holds the generic tree a YAML or JSON document is loaded
// into: ordered mappings, sequences and scalar leaves.
package document

// Kind tags the variant held by a Node.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// ScalarKind is the type of a scalar leaf.
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarString
	ScalarInt
	ScalarFloat
	ScalarBool
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarString:
		return "string"
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "bool"
	default:
		return "null"
	}
}

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   string
	Value *Node
}

// Node is a position in the tree. Only the fields of its Kind are set:
// Pairs for mappings, Items for sequences, Scalar/Text/Value for scalars.
// Trees are not mutated once loaded.
type Node struct {
	Kind  Kind
	Pairs []Pair
	Items []*Node

	Scalar ScalarKind
	// Text is the canonical rendering patterns are matched against.
	Text string
	// Value is the decoded Go value: nil, string, bool, int64, uint64 or float64.
	Value any
}

func NewMapping(pairs ...Pair) *Node {
	return &Node{Kind: KindMapping, Pairs: pairs}
}

func NewSequence(items ...*Node) *Node {
	return &Node{Kind: KindSequence, Items: items}
}

func NewString(s string) *Node {
	return &Node{Kind: KindScalar, Scalar: ScalarString, Text: s, Value: s}
}

func NewBool(b bool) *Node {
	text := "false"
	if b {
		text = "true"
	}
	return &Node{Kind: KindScalar, Scalar: ScalarBool, Text: text, Value: b}
}

func NewNull() *Node {
	return &Node{Kind: KindScalar, Scalar: ScalarNull, Text: "null"}
}

// NewNumber builds a numeric scalar from any integer, float or json.Number.
// Non-numeric input yields nil.
func NewNumber(v any) *Node {
	node := &Node{Kind: KindScalar}
	if !node.setNumber(v) {
		return nil
	}
	return node
}

// Get returns the value stored under key in a mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind != KindMapping {
		return nil, false
	}
	for _, pair := range n.Pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return nil, false
}

// Keys lists the keys of a mapping in document order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.Pairs))
	for _, pair := range n.Pairs {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len is the number of direct children.
func (n *Node) Len() int {
	switch n.Kind {
	case KindMapping:
		return len(n.Pairs)
	case KindSequence:
		return len(n.Items)
	default:
		return 0
	}
}
