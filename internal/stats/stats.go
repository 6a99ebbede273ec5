// Package stats inventories a notebook hierarchy: it counts section groups,
// sections and pages and extracts page records, always leaving out the
// recycle bin.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aidanlsb/onenotestats/internal/hierarchy"
)

// RecycleBinName is the name OneNote gives the recycle bin section group.
const RecycleBinName = "OneNote_RecycleBin"

// DefaultPathSeparator joins location path segments.
const DefaultPathSeparator = `\`

// ErrMalformedData indicates a node is missing a required attribute.
var ErrMalformedData = errors.New("malformed hierarchy data")

// MalformedDataError names the node and attribute that could not be read.
type MalformedDataError struct {
	NodeID    string
	Attribute string
	Err       error
}

func (e *MalformedDataError) Error() string {
	node := e.NodeID
	if node == "" {
		node = "(no ID)"
	}
	if e.Err != nil {
		return fmt.Sprintf("page %s: invalid %q attribute: %v", node, e.Attribute, e.Err)
	}
	return fmt.Sprintf("page %s: missing %q attribute", node, e.Attribute)
}

func (e *MalformedDataError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedData, e.Err}
	}
	return []error{ErrMalformedData}
}

// PageRecord describes one page of the notebook.
type PageRecord struct {
	ID               string
	Name             string
	DateTime         time.Time
	LastModifiedTime time.Time
	PageLevel        int
	// IsCurrentlyViewed is nil unless the provider reported the attribute.
	IsCurrentlyViewed *string
	// Location is where the page lives, excluding the page's own name.
	Location string
}

// Summary holds the aggregate counts of a notebook.
type Summary struct {
	Notebook          string `json:"notebook"`
	SectionGroupCount int    `json:"section_groups"`
	SectionCount      int    `json:"sections"`
	PageCount         int    `json:"pages"`
}

// Options configures an Analyzer.
type Options struct {
	// PathSeparator joins location path segments. Defaults to a backslash.
	PathSeparator string
}

// Analyzer answers inventory questions about a single notebook tree.
type Analyzer struct {
	tree *hierarchy.Tree
	sep  string
}

// New returns an analyzer over tree.
func New(tree *hierarchy.Tree, opts Options) *Analyzer {
	sep := opts.PathSeparator
	if sep == "" {
		sep = DefaultPathSeparator
	}
	return &Analyzer{tree: tree, sep: sep}
}

// Open resolves nickname through the provider and loads its pages-scope
// hierarchy. A nickname with no matching notebook surfaces the provider's
// not-found error.
func Open(ctx context.Context, p hierarchy.Provider, nickname string, opts Options) (*Analyzer, error) {
	id, err := p.NotebookID(ctx, nickname)
	if err != nil {
		return nil, err
	}
	tree, err := p.Tree(ctx, id, hierarchy.ScopePages)
	if err != nil {
		return nil, fmt.Errorf("failed to load hierarchy of %q: %w", nickname, err)
	}
	return New(tree, opts), nil
}

// isRecycleBin reports whether n roots an excluded subtree.
func isRecycleBin(n *hierarchy.Node) bool {
	if n.Kind != hierarchy.KindSectionGroup {
		return false
	}
	name, ok := n.Name()
	return ok && name == RecycleBinName
}

// visible walks every node outside the recycle bin in document order.
func (a *Analyzer) visible(fn func(id hierarchy.NodeID, n *hierarchy.Node)) {
	if a.tree == nil {
		return
	}
	a.tree.Walk(func(id hierarchy.NodeID, n *hierarchy.Node) bool {
		if isRecycleBin(n) {
			return false
		}
		fn(id, n)
		return true
	})
}

func (a *Analyzer) count(kind hierarchy.Kind) int {
	total := 0
	a.visible(func(_ hierarchy.NodeID, n *hierarchy.Node) {
		if n.Kind == kind {
			total++
		}
	})
	return total
}

// SectionGroupCount returns the number of section groups outside the recycle bin.
func (a *Analyzer) SectionGroupCount() int {
	return a.count(hierarchy.KindSectionGroup)
}

// SectionCount returns the number of sections outside the recycle bin.
func (a *Analyzer) SectionCount() int {
	return a.count(hierarchy.KindSection)
}

// PageCount returns the number of pages outside the recycle bin.
func (a *Analyzer) PageCount() int {
	return a.count(hierarchy.KindPage)
}

// NotebookName returns the name of the tree's root, if it has one.
func (a *Analyzer) NotebookName() string {
	if a.tree == nil || a.tree.Root() == hierarchy.NoNode {
		return ""
	}
	name, _ := a.tree.Node(a.tree.Root()).Name()
	return name
}

// Summary returns all counts in a single pass.
func (a *Analyzer) Summary() Summary {
	s := Summary{Notebook: a.NotebookName()}
	a.visible(func(_ hierarchy.NodeID, n *hierarchy.Node) {
		switch n.Kind {
		case hierarchy.KindSectionGroup:
			s.SectionGroupCount++
		case hierarchy.KindSection:
			s.SectionCount++
		case hierarchy.KindPage:
			s.PageCount++
		}
	})
	return s
}

// ExtractPages returns a record for every page outside the recycle bin, in
// document order. The first page with a missing or unreadable required
// attribute aborts the extraction.
func (a *Analyzer) ExtractPages() ([]PageRecord, error) {
	var records []PageRecord
	var firstErr error
	a.visible(func(id hierarchy.NodeID, n *hierarchy.Node) {
		if firstErr != nil || n.Kind != hierarchy.KindPage {
			return
		}
		rec, err := a.pageRecord(id, n)
		if err != nil {
			firstErr = err
			return
		}
		records = append(records, rec)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return records, nil
}

func (a *Analyzer) pageRecord(id hierarchy.NodeID, n *hierarchy.Node) (PageRecord, error) {
	nodeID, _ := n.Attr("ID")
	required := func(attr string) (string, error) {
		v, ok := n.Attr(attr)
		if !ok {
			return "", &MalformedDataError{NodeID: nodeID, Attribute: attr}
		}
		return v, nil
	}

	rec := PageRecord{}
	var err error
	if rec.ID, err = required("ID"); err != nil {
		return PageRecord{}, err
	}
	if rec.Name, err = required("name"); err != nil {
		return PageRecord{}, err
	}

	for _, ts := range []struct {
		attr string
		dst  *time.Time
	}{
		{"dateTime", &rec.DateTime},
		{"lastModifiedTime", &rec.LastModifiedTime},
	} {
		raw, err := required(ts.attr)
		if err != nil {
			return PageRecord{}, err
		}
		if *ts.dst, err = ParseTimestamp(raw); err != nil {
			return PageRecord{}, &MalformedDataError{NodeID: nodeID, Attribute: ts.attr, Err: err}
		}
	}

	raw, err := required("pageLevel")
	if err != nil {
		return PageRecord{}, err
	}
	level, err := strconv.Atoi(raw)
	if err == nil && level < 0 {
		err = fmt.Errorf("negative level %d", level)
	}
	if err != nil {
		return PageRecord{}, &MalformedDataError{NodeID: nodeID, Attribute: "pageLevel", Err: err}
	}
	rec.PageLevel = level

	if v, ok := n.Attr("isCurrentlyViewed"); ok {
		rec.IsCurrentlyViewed = &v
	}
	rec.Location = a.tree.LocationPath(id, a.sep)
	return rec, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp reads a provider timestamp. Values without a zone are taken
// as given and stored as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
