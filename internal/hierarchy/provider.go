package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Scope selects how deep a hierarchy query descends.
type Scope int

const (
	// ScopeNotebooks returns notebook nodes only.
	ScopeNotebooks Scope = iota
	// ScopePages returns everything down to pages.
	ScopePages
)

// ErrNotFound indicates a notebook or container could not be resolved.
var ErrNotFound = errors.New("not found")

// NotFoundError names the notebook or container that could not be resolved.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find %q as %s name", e.Name, e.Kind)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Provider exposes a notebook hierarchy.
type Provider interface {
	// NotebookID resolves a notebook nickname to its identifier.
	NotebookID(ctx context.Context, nickname string) (string, error)
	// Tree returns the hierarchy below containerID. An empty containerID
	// queries the top-level notebooks.
	Tree(ctx context.Context, containerID string, scope Scope) (*Tree, error)
}

// FileProvider serves hierarchy queries from an exported hierarchy document
// (the full pages-scope dump of every open notebook).
type FileProvider struct {
	path string

	once sync.Once
	tree *Tree
	err  error
}

// NewFileProvider returns a provider reading the document at path. The file
// is read lazily on the first query.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) load() (*Tree, error) {
	p.once.Do(func() {
		f, err := os.Open(p.path)
		if err != nil {
			p.err = fmt.Errorf("failed to open hierarchy file: %w", err)
			return
		}
		defer f.Close()
		p.tree, p.err = Parse(f)
	})
	return p.tree, p.err
}

// NotebookID implements Provider. Notebooks are matched on nickname, then on
// name when the nickname attribute is absent.
func (p *FileProvider) NotebookID(ctx context.Context, nickname string) (string, error) {
	t, err := p.load()
	if err != nil {
		return "", err
	}
	id, ok := findNotebook(t, func(n *Node) bool {
		nick, ok := n.Attr("nickname")
		if !ok {
			nick, ok = n.Name()
		}
		return ok && nick == nickname
	})
	if !ok {
		return "", &NotFoundError{Kind: "notebook", Name: nickname}
	}
	return t.Node(id).ID(), nil
}

// Tree implements Provider.
func (p *FileProvider) Tree(ctx context.Context, containerID string, scope Scope) (*Tree, error) {
	t, err := p.load()
	if err != nil {
		return nil, err
	}

	root := t.Root()
	if containerID != "" {
		id, ok := findByID(t, containerID)
		if !ok {
			return nil, &NotFoundError{Kind: "container", Name: containerID}
		}
		root = id
	}

	sub := t.Subtree(root)
	if scope == ScopeNotebooks {
		return sub.prune(KindNotebook), nil
	}
	return sub, nil
}

func findNotebook(t *Tree, match func(*Node) bool) (NodeID, bool) {
	found := NoNode
	t.Walk(func(id NodeID, n *Node) bool {
		if found != NoNode {
			return false
		}
		if n.Kind == KindNotebook {
			if match(n) {
				found = id
			}
			return false
		}
		return true
	})
	return found, found != NoNode
}

func findByID(t *Tree, containerID string) (NodeID, bool) {
	found := NoNode
	t.Walk(func(id NodeID, n *Node) bool {
		if found != NoNode {
			return false
		}
		if n.ID() == containerID {
			found = id
			return false
		}
		return true
	})
	return found, found != NoNode
}

// prune returns a copy of t without the descendants of nodes of the given
// kind.
func (t *Tree) prune(leaf Kind) *Tree {
	var b Builder
	mapped := make(map[NodeID]NodeID, len(t.nodes))
	t.Walk(func(id NodeID, n *Node) bool {
		parent := NoNode
		if p := t.Parent(id); p != NoNode {
			parent = mapped[p]
		}
		mapped[id] = b.Add(parent, n.Kind, n.Attrs)
		return n.Kind != leaf
	})
	return b.Build()
}
