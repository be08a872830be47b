package xmlform

import (
	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/framework/helpers"
)

// Processor applies one reconciliation pass over a document. It is constructed with the
// submitted values and the element registry used for orphan lookups; the form element
// tree and the target document are supplied per Process call.
type Processor struct {
	values   Values
	elements *ElementRegistry
	logger   framework.Logger
}

type ProcessorOption helpers.ConfigOption[Processor]

type processorOptionLogger struct {
	logger framework.Logger
}

func (o processorOptionLogger) Configure(p *Processor) error {
	p.logger = o.logger
	return nil
}

// ProcessorLogger directs the processor's debug output to the given logger.
func ProcessorLogger(logger framework.Logger) ProcessorOption {
	return processorOptionLogger{logger}
}

// NewProcessor creates a Processor. The elements registry should contain every element
// definition that has ever contributed a node to the document, not just the current
// tree; orphan deletion depends on finding definitions for hashes that are no longer in
// the form.
func NewProcessor(values Values, elements *ElementRegistry, options ...ProcessorOption) *Processor {
	if elements == nil {
		elements = NewElementRegistry()
	}
	p := &Processor{
		values:   values,
		elements: elements,
		logger:   framework.NullLogger(),
	}
	_ = helpers.ApplyOptions(p, options...)
	return p
}

// Process makes doc consistent with the submitted form state rooted at root, applying
// create, update, and delete mutations in that order. It never returns an error: a
// create action that stays unexecutable across all retry passes is dropped, and the
// returned document is simply incomplete (see Document.Dropped).
func (p *Processor) Process(root *FormElement, doc *Document) *Document {
	doc.dropped = nil
	flattened := root.Flatten()

	// Elements hidden by an access=false flag are excluded from every phase below, even
	// if a prior pass registered nodes for them.
	visible := make([]*FormElement, 0, len(flattened))
	visibleSet := make(map[Hash]bool, len(flattened))
	for _, el := range flattened {
		if el.Visible() {
			visible = append(visible, el)
			visibleSet[el.Hash()] = true
		}
	}

	queues := p.partition(visible, doc)

	p.runCreateQueue(queues[PhaseCreate], doc)
	p.runQueue(queues[PhaseUpdate], doc)
	p.runQueue(queues[PhaseDelete], doc)
	p.deleteOrphans(visibleSet, doc)

	return doc
}

// partition builds the per-phase action queues, selecting at most one action per element
// per pass: once an element is selected for a phase, it leaves the working set so later
// phase selection does not re-examine it.
func (p *Processor) partition(working []*FormElement, doc *Document) map[Phase][]ProcessAction {
	queues := make(map[Phase][]ProcessAction)
	for _, phase := range []Phase{PhaseCreate, PhaseUpdate, PhaseDelete} {
		remaining := working[:0:0]
		for _, el := range working {
			action, ok := el.ActionForPhase(phase)
			if ok && action.ShouldExecute(doc, el, p.values.Get(el.Hash())) {
				queues[phase] = append(queues[phase], ProcessAction{
					Action:  action,
					Element: el,
					Value:   p.values.Get(el.Hash()),
				})
				continue
			}
			remaining = append(remaining, el)
		}
		working = remaining
	}
	return queues
}

// runCreateQueue executes the create queue with retry semantics: an action returning
// false is assumed to be waiting on a node another queued action will create, so the
// queue is re-run until a full pass makes no progress. Each success shrinks the queue,
// so this terminates; whatever survives a zero-progress pass is recorded as dropped.
func (p *Processor) runCreateQueue(queue []ProcessAction, doc *Document) {
	for len(queue) != 0 {
		executed := 0
		remaining := queue[:0:0]
		for _, pa := range queue {
			if pa.execute(doc) {
				p.logger.Printf("created node for %q", pa.Element.Hash())
				executed++
			} else {
				remaining = append(remaining, pa)
			}
		}
		queue = remaining
		if executed == 0 {
			break
		}
	}
	if len(queue) != 0 {
		for _, pa := range queue {
			p.logger.Printf("dropping unexecutable create action for %q", pa.Element.Hash())
		}
		doc.dropped = append(doc.dropped, queue...)
	}
}

// runQueue executes each queued action once, in flattened order, with no retries.
func (p *Processor) runQueue(queue []ProcessAction, doc *Document) {
	for _, pa := range queue {
		if !pa.execute(doc) {
			p.logger.Printf("%s action for %q did not execute", pa.Action.Phase(), pa.Element.Hash())
		}
	}
}

// deleteOrphans removes document nodes whose form element disappeared entirely (for
// instance, a repeated sub-form instance the user removed). Explicit deletes have
// already run; actions are idempotent, so a node both explicitly deleted and
// orphan-eligible is not deleted twice.
func (p *Processor) deleteOrphans(visibleSet map[Hash]bool, doc *Document) {
	for _, hash := range doc.Registry().Hashes() {
		if visibleSet[hash] {
			continue
		}
		el, ok := p.elements.Lookup(hash)
		if !ok {
			continue
		}
		action, ok := el.ActionForPhase(PhaseDelete)
		if !ok {
			continue
		}
		value := p.values.Get(hash)
		if action.ShouldExecute(doc, el, value) {
			p.logger.Printf("deleting orphan node for %q", hash)
			action.Execute(doc, el, value)
		}
	}
}
