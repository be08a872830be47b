package xmlform

import (
	"testing"

	"github.com/beevik/etree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeRegistryRoundTrip(t *testing.T) {
	tree := etree.NewDocument()
	node1 := tree.CreateElement("one")
	node2 := node1.CreateElement("two")

	r := NewNodeRegistry()
	r.Register("h1", node1)
	r.Register("h2", node2)

	got, ok := r.Lookup("h1")
	require.True(t, ok)
	assert.Same(t, node1, got)

	assert.Equal(t, []Hash{"h1", "h2"}, r.Hashes())

	r.Deregister("h1")
	_, ok = r.Lookup("h1")
	assert.False(t, ok)
	assert.Equal(t, []Hash{"h2"}, r.Hashes())

	r.Deregister("h1") // second deregister is a no-op
	assert.Equal(t, []Hash{"h2"}, r.Hashes())
}

func TestNodeRegistryReRegisterKeepsOrder(t *testing.T) {
	tree := etree.NewDocument()
	node1 := tree.CreateElement("one")
	node2 := tree.CreateElement("two")

	r := NewNodeRegistry()
	r.Register("h1", node1)
	r.Register("h2", node2)
	r.Register("h1", node2) // replacement, not a new entry

	assert.Equal(t, []Hash{"h1", "h2"}, r.Hashes())
	got, _ := r.Lookup("h1")
	assert.Same(t, node2, got)
}

func TestElementRegistryRegistersWholeTree(t *testing.T) {
	root := NewFormElement("r").
		WithChild(NewFormElement("a")).
		WithChild(NewFormElement("b").WithChild(NewFormElement("b1")))

	r := NewElementRegistry()
	r.RegisterTree(root)

	for _, hash := range []Hash{"r", "a", "b", "b1"} {
		_, ok := r.Lookup(hash)
		assert.True(t, ok, "expected %q to be registered", hash)
	}
	_, ok := r.Lookup("nope")
	assert.False(t, ok)
}

func TestNewDocumentWithNilTree(t *testing.T) {
	doc := NewDocument(nil)
	require.NotNil(t, doc.XML())
	assert.Nil(t, doc.XML().Root())
	assert.Empty(t, doc.Registry().Hashes())
}
