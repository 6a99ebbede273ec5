package hierarchy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample() (*Tree, map[string]NodeID) {
	var b Builder
	ids := map[string]NodeID{}
	ids["nb"] = b.Add(NoNode, KindNotebook, map[string]string{"name": "NB", "ID": "nb"})
	ids["s1"] = b.Add(ids["nb"], KindSection, map[string]string{"name": "S1", "ID": "s1"})
	ids["p1"] = b.Add(ids["s1"], KindPage, map[string]string{"name": "P1", "ID": "p1"})
	ids["sg"] = b.Add(ids["nb"], KindSectionGroup, map[string]string{"name": "G", "ID": "sg"})
	ids["anon"] = b.Add(ids["sg"], KindOther, nil)
	ids["s2"] = b.Add(ids["anon"], KindSection, map[string]string{"name": "S2", "ID": "s2"})
	ids["p2"] = b.Add(ids["s2"], KindPage, map[string]string{"name": "P2", "ID": "p2"})
	return b.Build(), ids
}

func TestLocationPath(t *testing.T) {
	tree, ids := buildSample()

	tests := []struct {
		name string
		node string
		sep  string
		want string
	}{
		{name: "root", node: "nb", sep: `\`, want: ""},
		{name: "section", node: "s1", sep: `\`, want: `\NB`},
		{name: "page excludes own name", node: "p1", sep: `\`, want: `\NB\S1`},
		{name: "forward slash", node: "p1", sep: "/", want: "/NB/S1"},
		{name: "unnamed ancestor adds no segment", node: "p2", sep: `\`, want: `\NB\G\S2`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.LocationPath(ids[tt.node], tt.sep))
		})
	}
}

func TestLocationPathIsStable(t *testing.T) {
	tree, ids := buildSample()
	first := tree.LocationPath(ids["p2"], `\`)
	second := tree.LocationPath(ids["p2"], `\`)
	assert.Equal(t, first, second)
}

func TestLocationPathDeepNesting(t *testing.T) {
	var b Builder
	id := b.Add(NoNode, KindNotebook, map[string]string{"name": "root"})
	const depth = 100000
	for i := 0; i < depth; i++ {
		id = b.Add(id, KindSectionGroup, map[string]string{"name": "g"})
	}
	tree := b.Build()

	got := tree.LocationPath(id, "/")
	assert.Equal(t, "/root"+strings.Repeat("/g", depth-1), got)
}

func TestWalkDocumentOrder(t *testing.T) {
	tree, _ := buildSample()

	var names []string
	tree.Walk(func(id NodeID, n *Node) bool {
		if name, ok := n.Name(); ok {
			names = append(names, name)
		}
		return true
	})
	assert.Equal(t, []string{"NB", "S1", "P1", "G", "S2", "P2"}, names)
}

func TestWalkSkipsSubtree(t *testing.T) {
	tree, _ := buildSample()

	var names []string
	tree.Walk(func(id NodeID, n *Node) bool {
		name, _ := n.Name()
		names = append(names, name)
		return name != "G"
	})
	assert.Equal(t, []string{"NB", "S1", "P1", "G"}, names)
}

func TestSubtreeDetachesRoot(t *testing.T) {
	tree, ids := buildSample()

	sub := tree.Subtree(ids["sg"])
	require.Equal(t, 4, sub.Len())
	assert.Equal(t, NoNode, sub.Parent(sub.Root()))
	assert.Equal(t, "", sub.LocationPath(sub.Root(), `\`))

	var last NodeID
	sub.Walk(func(id NodeID, n *Node) bool {
		last = id
		return true
	})
	assert.Equal(t, `\G\S2`, sub.LocationPath(last, `\`))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "SectionGroup", KindSectionGroup.String())
	assert.Equal(t, "Other", KindOther.String())
}
