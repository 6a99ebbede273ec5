// Package hierarchy models a OneNote notebook hierarchy as a read-only tree.
//
// Nodes live in an arena owned by Tree. Parent links are indexes into that
// arena, so walking upward never requires a shared pointer back to the parent.
package hierarchy

import "strings"

// Kind identifies the hierarchy level of a node.
type Kind int

const (
	KindOther Kind = iota
	KindNotebooks
	KindNotebook
	KindSectionGroup
	KindSection
	KindPage
)

func (k Kind) String() string {
	switch k {
	case KindNotebooks:
		return "Notebooks"
	case KindNotebook:
		return "Notebook"
	case KindSectionGroup:
		return "SectionGroup"
	case KindSection:
		return "Section"
	case KindPage:
		return "Page"
	default:
		return "Other"
	}
}

// NodeID indexes a node inside its Tree.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Node is a single element of the hierarchy.
type Node struct {
	Kind Kind

	// Attrs holds the raw attribute values as reported by the provider
	// (ID, name, nickname, dateTime, lastModifiedTime, pageLevel, ...).
	Attrs map[string]string

	parent   NodeID
	children []NodeID
}

// Attr returns the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Name returns the node's name attribute, if any.
func (n *Node) Name() (string, bool) {
	return n.Attr("name")
}

// ID returns the provider identifier of the node.
func (n *Node) ID() string {
	return n.Attrs["ID"]
}

// Tree is an immutable, rooted hierarchy.
type Tree struct {
	nodes []Node
}

// Builder assembles a Tree in document order.
type Builder struct {
	nodes []Node
}

// Add appends a node under parent and returns its id. Pass NoNode to add the
// root; only one root may be added.
func (b *Builder) Add(parent NodeID, kind Kind, attrs map[string]string) NodeID {
	id := NodeID(len(b.nodes))
	if attrs == nil {
		attrs = map[string]string{}
	}
	b.nodes = append(b.nodes, Node{Kind: kind, Attrs: attrs, parent: parent})
	if parent != NoNode {
		b.nodes[parent].children = append(b.nodes[parent].children, id)
	}
	return id
}

// Build returns the finished tree. The builder must not be reused.
func (b *Builder) Build() *Tree {
	t := &Tree{nodes: b.nodes}
	b.nodes = nil
	return t
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the root node id, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Children returns the ordered children of id.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// Walk visits every node depth-first in document order. Returning false from
// fn skips the node's subtree.
func (t *Tree) Walk(fn func(id NodeID, n *Node) bool) {
	if len(t.nodes) == 0 {
		return
	}
	stack := []NodeID{t.Root()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id, &t.nodes[id]) {
			continue
		}
		children := t.nodes[id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Ancestors returns the strict ancestors of id, nearest first.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		out = append(out, p)
	}
	return out
}

// LocationPath returns where the node lives: the names of its ancestors from
// the root down, each prefixed with sep. The node's own name is not included,
// so the root resolves to "". Ancestors without a name add no segment.
func (t *Tree) LocationPath(id NodeID, sep string) string {
	ancestors := t.Ancestors(id)
	var b strings.Builder
	for i := len(ancestors) - 1; i >= 0; i-- {
		name, ok := t.nodes[ancestors[i]].Name()
		if !ok {
			continue
		}
		b.WriteString(sep)
		b.WriteString(name)
	}
	return b.String()
}

// Subtree copies the subtree rooted at id into a new tree whose root is id.
// The new root has no parent.
func (t *Tree) Subtree(id NodeID) *Tree {
	var b Builder
	type frame struct {
		src    NodeID
		parent NodeID
	}
	stack := []frame{{src: id, parent: NoNode}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[f.src]
		attrs := make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			attrs[k] = v
		}
		nid := b.Add(f.parent, n.Kind, attrs)
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{src: n.children[i], parent: nid})
		}
	}
	return b.Build()
}
