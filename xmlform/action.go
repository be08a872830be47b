package xmlform

import "github.com/launchdarkly/go-sdk-common/v3/ldvalue"

// Phase is the lifecycle phase an action belongs to. Phases run in declaration order:
// creates before updates, updates before deletes.
type Phase int

const (
	PhaseCreate Phase = iota
	PhaseUpdate
	PhaseDelete
)

func (p Phase) String() string {
	switch p {
	case PhaseCreate:
		return "create"
	case PhaseUpdate:
		return "update"
	case PhaseDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Action is one lifecycle operation bound to a form element.
type Action interface {
	// Phase returns the lifecycle phase this action runs in.
	Phase() Phase

	// ShouldExecute reports whether the action needs to run, given the current document
	// state and the submitted value. Predicates must be idempotent against a consistent
	// document: once the document reflects the form, they return false.
	ShouldExecute(doc *Document, el *FormElement, value ldvalue.Value) bool

	// Execute mutates the document. During the create phase a false return means the
	// action could not run yet (for instance, its parent node does not exist) and should
	// be retried on the next pass over the queue; it is not a terminal error.
	Execute(doc *Document, el *FormElement, value ldvalue.Value) bool
}

// ProcessAction is a bound triple of action, element, and submitted value, queued for
// execution during a phase.
type ProcessAction struct {
	Action  Action
	Element *FormElement
	Value   ldvalue.Value
}

func (pa ProcessAction) execute(doc *Document) bool {
	return pa.Action.Execute(doc, pa.Element, pa.Value)
}
