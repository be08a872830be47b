package xmlform

import (
	"github.com/beevik/etree"
)

// Document is the mutable reconciliation target. It wraps an XML tree and owns the
// NodeRegistry recording which form positions already have document nodes. Only actions
// mutate it, and only during a Process call.
type Document struct {
	tree     *etree.Document
	registry *NodeRegistry
	dropped  []ProcessAction
}

// NewDocument wraps an XML tree in an empty-registry Document. Callers reconciling a
// document produced by an earlier pass must re-register its nodes first.
func NewDocument(tree *etree.Document) *Document {
	if tree == nil {
		tree = etree.NewDocument()
	}
	return &Document{
		tree:     tree,
		registry: NewNodeRegistry(),
	}
}

// XML returns the underlying tree.
func (d *Document) XML() *etree.Document {
	return d.tree
}

// Registry returns the document's node registry.
func (d *Document) Registry() *NodeRegistry {
	return d.registry
}

// Dropped returns the create actions that never became executable during the most recent
// Process call. The document is incomplete with respect to these elements; historically
// this condition was silent, so it does not make Process fail, but callers can inspect
// it for diagnostics.
func (d *Document) Dropped() []ProcessAction {
	return d.dropped
}

// NodeRegistry maps an element identity hash to a previously created document node. It
// is the authoritative record of what already exists in the document.
type NodeRegistry struct {
	nodes map[Hash]*etree.Element
	order []Hash
}

func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{nodes: make(map[Hash]*etree.Element)}
}

// Register records a node for a hash. Create actions must call this after building the
// node.
func (r *NodeRegistry) Register(hash Hash, node *etree.Element) {
	if _, exists := r.nodes[hash]; !exists {
		r.order = append(r.order, hash)
	}
	r.nodes[hash] = node
}

// Lookup returns the node registered for a hash, if any.
func (r *NodeRegistry) Lookup(hash Hash) (*etree.Element, bool) {
	node, ok := r.nodes[hash]
	return node, ok
}

// Deregister removes a hash. Delete actions must call this after detaching the node.
func (r *NodeRegistry) Deregister(hash Hash) {
	if _, exists := r.nodes[hash]; !exists {
		return
	}
	delete(r.nodes, hash)
	for i, h := range r.order {
		if h == hash {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Hashes returns all registered hashes in registration order.
func (r *NodeRegistry) Hashes() []Hash {
	ret := make([]Hash, len(r.order))
	copy(ret, r.order)
	return ret
}

// ElementRegistry maps hashes to form element definitions. The processor uses it during
// orphan deletion to find the delete action of an element that is no longer present in
// the submitted tree.
type ElementRegistry struct {
	elements map[Hash]*FormElement
}

func NewElementRegistry() *ElementRegistry {
	return &ElementRegistry{elements: make(map[Hash]*FormElement)}
}

// RegisterTree records an element and all of its descendants.
func (r *ElementRegistry) RegisterTree(root *FormElement) {
	for _, el := range root.Flatten() {
		r.elements[el.Hash()] = el
	}
}

// Lookup returns the element definition for a hash, if one was ever registered.
func (r *ElementRegistry) Lookup(hash Hash) (*FormElement, bool) {
	el, ok := r.elements[hash]
	return el, ok
}
