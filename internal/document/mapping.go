package document

// mappingBuilder appends pairs while keeping keys unique. A repeated key
// replaces the earlier value but keeps the earlier position.
type mappingBuilder struct {
	node  *Node
	index map[string]int
}

func newMappingBuilder(node *Node, capacity int) *mappingBuilder {
	node.Kind = KindMapping
	node.Pairs = make([]Pair, 0, capacity)
	return &mappingBuilder{node: node, index: make(map[string]int, capacity)}
}

func (b *mappingBuilder) set(key string, value *Node) {
	if i, ok := b.index[key]; ok {
		b.node.Pairs[i].Value = value
		return
	}
	b.index[key] = len(b.node.Pairs)
	b.node.Pairs = append(b.node.Pairs, Pair{Key: key, Value: value})
}
