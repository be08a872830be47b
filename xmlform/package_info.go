// Package xmlform reconciles a submitted form's element tree against a persistent XML
// document. Each form element carries a stable identity hash and optional lifecycle
// actions (create, update, delete); a processing pass applies the minimum necessary
// mutations, in an order that respects structural dependencies, so that the document
// reflects the form state.
//
// The package is single-threaded by design: a Document and its registry are mutated in
// place during one Process call, and callers must serialize concurrent access to the
// same document externally.
package xmlform
