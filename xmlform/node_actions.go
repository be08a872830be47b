package xmlform

import (
	"github.com/beevik/etree"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// CreateNodeAction creates an XML element for a form position. If Parent is set, the new
// node is appended under the node registered for that hash; creation is deferred (and
// retried) until the parent exists. An empty Parent targets the document root, creating
// it if the document is empty.
type CreateNodeAction struct {
	Parent Hash
	Tag    string
}

func (a CreateNodeAction) Phase() Phase { return PhaseCreate }

func (a CreateNodeAction) ShouldExecute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	_, exists := doc.Registry().Lookup(el.Hash())
	return !exists
}

func (a CreateNodeAction) Execute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	tree := doc.XML()
	if a.Parent == "" {
		var node *etree.Element
		if root := tree.Root(); root == nil {
			node = tree.CreateElement(a.Tag)
		} else {
			node = root.CreateElement(a.Tag)
		}
		setNodeText(node, value)
		doc.Registry().Register(el.Hash(), node)
		return true
	}
	parent, ok := doc.Registry().Lookup(a.Parent)
	if !ok {
		return false // parent not created yet; retry on the next pass
	}
	node := parent.CreateElement(a.Tag)
	setNodeText(node, value)
	doc.Registry().Register(el.Hash(), node)
	return true
}

// UpdateNodeAction rewrites a node's text content when it differs from the submitted
// value.
type UpdateNodeAction struct{}

func (a UpdateNodeAction) Phase() Phase { return PhaseUpdate }

func (a UpdateNodeAction) ShouldExecute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	node, ok := doc.Registry().Lookup(el.Hash())
	return ok && node.Text() != textForValue(value)
}

func (a UpdateNodeAction) Execute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	node, ok := doc.Registry().Lookup(el.Hash())
	if !ok {
		return false
	}
	node.SetText(textForValue(value))
	return true
}

// DeleteNodeAction detaches a node from the document and deregisters its hash.
// Deregistering makes the action idempotent: a second execution for the same hash finds
// nothing registered and does not run, which is what keeps explicit deletion and orphan
// deletion from double-executing.
type DeleteNodeAction struct{}

func (a DeleteNodeAction) Phase() Phase { return PhaseDelete }

func (a DeleteNodeAction) ShouldExecute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	_, ok := doc.Registry().Lookup(el.Hash())
	return ok
}

func (a DeleteNodeAction) Execute(doc *Document, el *FormElement, value ldvalue.Value) bool {
	node, ok := doc.Registry().Lookup(el.Hash())
	if !ok {
		return false
	}
	if parent := node.Parent(); parent != nil {
		parent.RemoveChild(node)
	}
	doc.Registry().Deregister(el.Hash())
	return true
}

func setNodeText(node *etree.Element, value ldvalue.Value) {
	if text := textForValue(value); text != "" {
		node.SetText(text)
	}
}

// textForValue renders a submitted value as node text: strings are used verbatim, other
// non-null values as their JSON representation.
func textForValue(value ldvalue.Value) string {
	switch {
	case value.IsNull():
		return ""
	case value.IsString():
		return value.StringValue()
	default:
		return value.JSONString()
	}
}
