package xmlform

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAction wraps another action and records how many times it ran, so tests can
// assert exactly-once semantics.
type countingAction struct {
	wrapped  Action
	executed int
}

func (c *countingAction) Phase() Phase { return c.wrapped.Phase() }

func (c *countingAction) ShouldExecute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	return c.wrapped.ShouldExecute(doc, el, value)
}

func (c *countingAction) Execute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	ok := c.wrapped.Execute(doc, el, value)
	if ok {
		c.executed++
	}
	return ok
}

// unexecutableCreate is a create action that never becomes executable, standing in for a
// create with an unresolvable dependency.
type unexecutableCreate struct{}

func (a unexecutableCreate) Phase() Phase { return PhaseCreate }
func (a unexecutableCreate) ShouldExecute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	_, exists := doc.Registry().Lookup(el.Hash())
	return !exists
}
func (a unexecutableCreate) Execute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	return false
}

func serialize(t *testing.T, doc *Document) string {
	s, err := doc.XML().WriteToString()
	require.NoError(t, err)
	return s
}

func processTree(root *FormElement, doc *Document, values Values) *Document {
	registry := NewElementRegistry()
	registry.RegisterTree(root)
	return NewProcessor(values, registry).Process(root, doc)
}

func TestCreatesNodesForNewElements(t *testing.T) {
	root := NewFormElement("h-root").
		WithAction(CreateNodeAction{Tag: "record"}).
		WithChild(NewFormElement("h-title").
			WithAction(CreateNodeAction{Parent: "h-root", Tag: "title"}))
	values := Values{"h-title": ldvalue.String("My Title")}

	doc := processTree(root, NewDocument(nil), values)

	titleNode := doc.XML().FindElement("/record/title")
	require.NotNil(t, titleNode)
	assert.Equal(t, "My Title", titleNode.Text())
	node, ok := doc.Registry().Lookup("h-title")
	require.True(t, ok)
	assert.Same(t, titleNode, node)
	assert.Empty(t, doc.Dropped())
}

func TestCreateRetriesUntilParentExists(t *testing.T) {
	// The child element appears before its parent in the flattened order, so its create
	// action fails on the first pass over the queue and succeeds on the second.
	root := NewFormElement("h-root").
		WithAction(CreateNodeAction{Tag: "record"}).
		WithChild(NewFormElement("h-name").
			WithAction(CreateNodeAction{Parent: "h-agent", Tag: "name"})).
		WithChild(NewFormElement("h-agent").
			WithAction(CreateNodeAction{Parent: "h-root", Tag: "agent"}))
	values := Values{"h-name": ldvalue.String("Someone")}

	doc := processTree(root, NewDocument(nil), values)

	nameNode := doc.XML().FindElement("/record/agent/name")
	require.NotNil(t, nameNode)
	assert.Equal(t, "Someone", nameNode.Text())
	assert.Empty(t, doc.Dropped())
}

func TestNoCreatesPendingOnlyUpdatesFire(t *testing.T) {
	tree := etree.NewDocument()
	record := tree.CreateElement("record")
	title := record.CreateElement("title")
	title.SetText("old title")
	doc := NewDocument(tree)
	doc.Registry().Register("h-root", record)
	doc.Registry().Register("h-title", title)

	root := NewFormElement("h-root").
		WithAction(CreateNodeAction{Tag: "record"}).
		WithChild(NewFormElement("h-title").
			WithAction(CreateNodeAction{Parent: "h-root", Tag: "title"}).
			WithAction(UpdateNodeAction{}))
	values := Values{"h-title": ldvalue.String("new title")}

	processTree(root, doc, values)

	assert.Len(t, doc.XML().FindElements("//title"), 1) // no duplicate node created
	assert.Equal(t, "new title", title.Text())
}

func TestCreateExecutesBeforeUpdateForSameElement(t *testing.T) {
	// A brand-new element with both a create and an update action: the create runs in
	// its own phase, and the element leaves the working set once selected, so the update
	// does not also fire in the same pass.
	create := &countingAction{wrapped: CreateNodeAction{Tag: "record"}}
	update := &countingAction{wrapped: UpdateNodeAction{}}
	root := NewFormElement("h-root").
		WithAction(create).
		WithAction(update)
	values := Values{"h-root": ldvalue.String("text")}

	doc := processTree(root, NewDocument(nil), values)

	assert.Equal(t, 1, create.executed)
	assert.Equal(t, 0, update.executed)
	node, ok := doc.Registry().Lookup("h-root")
	require.True(t, ok)
	assert.Equal(t, "text", node.Text())
}

func TestAccessFalseElementIsInvisible(t *testing.T) {
	create := &countingAction{wrapped: CreateNodeAction{Parent: "h-root", Tag: "secret"}}
	root := NewFormElement("h-root").
		WithAction(CreateNodeAction{Tag: "record"}).
		WithChild(NewFormElement("h-secret").
			WithAccess(false).
			WithAction(create).
			WithAction(UpdateNodeAction{}))

	doc := processTree(root, NewDocument(nil), Values{})

	assert.Equal(t, 0, create.executed)
	assert.Nil(t, doc.XML().FindElement("/record/secret"))
	_, registered := doc.Registry().Lookup("h-secret")
	assert.False(t, registered)
}

func TestAccessFalseRegisteredElementBecomesOrphan(t *testing.T) {
	tree := etree.NewDocument()
	record := tree.CreateElement("record")
	secret := record.CreateElement("secret")
	doc := NewDocument(tree)
	doc.Registry().Register("h-root", record)
	doc.Registry().Register("h-secret", secret)

	root := NewFormElement("h-root").
		WithAction(CreateNodeAction{Tag: "record"}).
		WithChild(NewFormElement("h-secret").
			WithAccess(false).
			WithAction(CreateNodeAction{Parent: "h-root", Tag: "secret"}).
			WithAction(DeleteNodeAction{}))

	processTree(root, doc, Values{})

	assert.Nil(t, doc.XML().FindElement("/record/secret"))
	_, registered := doc.Registry().Lookup("h-secret")
	assert.False(t, registered)
}

func TestUnresolvableCreateCycleTerminatesAndDrops(t *testing.T) {
	// Neither node can be created: each one's parent is the other. Process must
	// terminate after a zero-progress pass and leave both absent.
	root := NewFormElement("h-root").
		WithAction(CreateNodeAction{Tag: "record"}).
		WithChild(NewFormElement("h-a").
			WithAction(CreateNodeAction{Parent: "h-b", Tag: "a"})).
		WithChild(NewFormElement("h-b").
			WithAction(CreateNodeAction{Parent: "h-a", Tag: "b"}))

	doc := processTree(root, NewDocument(nil), Values{})

	assert.Nil(t, doc.XML().FindElement("//a"))
	assert.Nil(t, doc.XML().FindElement("//b"))
	require.Len(t, doc.Dropped(), 2)
	droppedHashes := []Hash{doc.Dropped()[0].Element.Hash(), doc.Dropped()[1].Element.Hash()}
	assert.ElementsMatch(t, []Hash{"h-a", "h-b"}, droppedHashes)
}

func TestSecondProcessPassIsIdempotent(t *testing.T) {
	root := NewFormElement("h-root").
		WithAction(CreateNodeAction{Tag: "record"}).
		WithChild(NewFormElement("h-title").
			WithAction(CreateNodeAction{Parent: "h-root", Tag: "title"}).
			WithAction(UpdateNodeAction{}))
	values := Values{"h-title": ldvalue.String("stable")}
	registry := NewElementRegistry()
	registry.RegisterTree(root)
	processor := NewProcessor(values, registry)

	doc := processor.Process(root, NewDocument(nil))
	firstResult := serialize(t, doc)

	processor.Process(root, doc)
	assert.Equal(t, firstResult, serialize(t, doc))
	assert.Empty(t, doc.Dropped())
}

func TestOrphanNodeIsDeletedExactlyOnce(t *testing.T) {
	// Scenario: the form previously had a repeatable "address" sub-element that the user
	// removed; the address node must be deleted from the document.
	tree := etree.NewDocument()
	record := tree.CreateElement("record")
	address := record.CreateElement("address")
	doc := NewDocument(tree)
	doc.Registry().Register("h-root", record)
	doc.Registry().Register("h-address", address)

	deleteAction := &countingAction{wrapped: DeleteNodeAction{}}
	oldAddressElement := NewFormElement("h-address").WithAction(deleteAction)

	root := NewFormElement("h-root").WithAction(CreateNodeAction{Tag: "record"})
	registry := NewElementRegistry()
	registry.RegisterTree(root)
	registry.RegisterTree(oldAddressElement)

	NewProcessor(Values{}, registry).Process(root, doc)

	assert.Equal(t, 1, deleteAction.executed)
	assert.Nil(t, doc.XML().FindElement("/record/address"))
	_, registered := doc.Registry().Lookup("h-address")
	assert.False(t, registered)
}

func TestExplicitDeleteRunsBeforeOrphanScanWithoutDoubleExecution(t *testing.T) {
	tree := etree.NewDocument()
	record := tree.CreateElement("record")
	note := record.CreateElement("note")
	doc := NewDocument(tree)
	doc.Registry().Register("h-root", record)
	doc.Registry().Register("h-note", note)

	deleteAction := &countingAction{wrapped: DeleteNodeAction{}}
	root := NewFormElement("h-root").
		WithAction(CreateNodeAction{Tag: "record"}).
		WithChild(NewFormElement("h-note").WithAction(deleteAction))

	processTree(root, doc, Values{})

	assert.Equal(t, 1, deleteAction.executed)
	assert.Nil(t, doc.XML().FindElement("/record/note"))
}

func TestDroppedIsResetBetweenPasses(t *testing.T) {
	badRoot := NewFormElement("h-root").WithAction(unexecutableCreate{})
	doc := NewDocument(nil)

	processTree(badRoot, doc, Values{})
	require.Len(t, doc.Dropped(), 1)

	goodRoot := NewFormElement("h-root").WithAction(CreateNodeAction{Tag: "record"})
	processTree(goodRoot, doc, Values{})
	assert.Empty(t, doc.Dropped())
}
