package search

import (
	"iter"

	"github.com/jacoelho/yamlgrep/internal/document"
	"github.com/jacoelho/yamlgrep/internal/pointer"
	"github.com/jacoelho/yamlgrep/internal/stack"
)

// frame is an open container and the index of its next child.
type frame struct {
	node *document.Node
	next int
}

// Walk visits every node exactly once in pre-order: a mapping's pairs in
// insertion order, a sequence's items by index, each child's subtree before
// its next sibling. It keeps its own stack instead of recursing, so nesting
// depth is limited only by memory.
//
// The yielded path shares one buffer for the whole walk and is only valid
// until the callback returns; use Path.Clone to keep it.
func Walk(root *document.Node) iter.Seq2[pointer.Path, *document.Node] {
	return func(yield func(pointer.Path, *document.Node) bool) {
		if root == nil {
			return
		}

		path := pointer.Path{}
		if !yield(path, root) {
			return
		}

		// len(path) == frames.Len()-1: the path leads to the top frame's node.
		frames := stack.New[frame]()
		if root.Len() > 0 {
			frames.Push(frame{node: root})
		}

		for !frames.IsEmpty() {
			top := frames.Top()
			if top.next >= top.node.Len() {
				frames.Pop()
				if len(path) > 0 {
					path = path[:len(path)-1]
				}
				continue
			}

			child, seg := childAt(top.node, top.next)
			top.next++

			path = append(path, seg)
			if !yield(path, child) {
				return
			}

			if child.Len() > 0 {
				frames.Push(frame{node: child})
				continue
			}
			path = path[:len(path)-1]
		}
	}
}

func childAt(node *document.Node, i int) (*document.Node, pointer.Segment) {
	if node.Kind == document.KindMapping {
		pair := node.Pairs[i]
		return pair.Value, pointer.Key(pair.Key)
	}
	return node.Items[i], pointer.Index(i)
}
