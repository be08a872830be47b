// Package helpers contains general-purpose test utilities that do not depend on any
// domain-specific harness code.
package helpers

import (
	"errors"
	"fmt"
	"strings"
)

// TestContext is a minimal interface for types like *testing.T and *rtest.T representing
// a test that can fail. Functions can use this to avoid specific dependencies on those
// packages.
type TestContext interface {
	Errorf(msgFormat string, msgArgs ...interface{})
	FailNow()
	Helper()
}

// TestRecorder is a TestContext implementation that remembers failures, for testing our
// own test logic.
type TestRecorder struct {
	Errors     []string
	Terminated bool

	// PanicOnTerminate, if true, makes FailNow panic the way a real test scope would.
	PanicOnTerminate bool
}

func (t *TestRecorder) Errorf(msgFormat string, msgArgs ...interface{}) {
	t.Errors = append(t.Errors, fmt.Sprintf(msgFormat, msgArgs...))
}

func (t *TestRecorder) FailNow() {
	t.Terminated = true
	if t.PanicOnTerminate {
		panic(t)
	}
}

func (t *TestRecorder) Helper() {}

// Err returns nil if no errors were recorded, or else a single error combining all of
// the recorded messages.
func (t *TestRecorder) Err() error {
	if len(t.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(t.Errors, ", "))
}
