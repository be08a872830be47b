package xmlform

import (
	o "github.com/openrepo/repo-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Hash is the stable identity of a form position. It is the join key between "what the
// form says should exist" and "what the document currently has": the same hash appears
// in the form element tree, the submitted values, and the document's node registry.
type Hash string

// Values is the set of submitted form values, keyed by element hash.
type Values map[Hash]ldvalue.Value

// Get returns the submitted value for a hash, or a null value if none was submitted.
func (v Values) Get(hash Hash) ldvalue.Value {
	if value, ok := v[hash]; ok {
		return value
	}
	return ldvalue.Null()
}

// FormElement is a node in a submitted form's structural tree. Elements and their
// actions are constructed before processing begins and are read-only during a pass.
type FormElement struct {
	hash     Hash
	access   o.Maybe[bool]
	actions  []Action
	children []*FormElement
}

// NewFormElement creates an element with the given identity hash.
func NewFormElement(hash Hash) *FormElement {
	return &FormElement{hash: hash}
}

// WithAccess sets the element's access-control flag. Elements whose flag is present and
// false are invisible to reconciliation.
func (e *FormElement) WithAccess(access bool) *FormElement {
	e.access = o.Some(access)
	return e
}

// WithAction binds a lifecycle action to the element. At most one action per phase is
// meaningful; if several are bound for the same phase, the first one wins.
func (e *FormElement) WithAction(action Action) *FormElement {
	e.actions = append(e.actions, action)
	return e
}

// WithChild appends a child element.
func (e *FormElement) WithChild(child *FormElement) *FormElement {
	e.children = append(e.children, child)
	return e
}

func (e *FormElement) Hash() Hash { return e.hash }

// Visible reports whether the element participates in reconciliation. Only an explicit
// access=false flag hides an element.
func (e *FormElement) Visible() bool {
	return e.access.OrElse(true)
}

// ActionForPhase returns the element's action for the given phase, if it has one.
func (e *FormElement) ActionForPhase(phase Phase) (Action, bool) {
	for _, a := range e.actions {
		if a.Phase() == phase {
			return a, true
		}
	}
	return nil, false
}

// Flatten returns the element and all of its descendants as an ordered sequence
// (pre-order traversal).
func (e *FormElement) Flatten() []*FormElement {
	ret := []*FormElement{e}
	for _, child := range e.children {
		ret = append(ret, child.Flatten()...)
	}
	return ret
}
