package matchers

import (
	"fmt"
	"testing"
)

func stringLength() MatcherTransform {
	return Transform(
		"string length",
		func(value interface{}) interface{} { return len(value.(string)) },
	)
}

func TestTransform(t *testing.T) {
	m := stringLength().Should(Equal(5))

	assertPasses(t, "abcde", m)
	assertFails(t, "abc", m, "expected: string length equal to 5\nactual value was: abc")
}

func TestTransformEnsureType(t *testing.T) {
	m := stringLength().EnsureInputValueType("example string").
		Should(Equal(5))

	assertPasses(t, "abcde", m)
	assertFails(t, "abc", m, "expected: string length equal to 5\nactual value was: abc")
	assertFails(t, 5, m, "expected: value of type string, was int\nactual value was: 5")
}

func TestTransformInputValueDesc(t *testing.T) {
	m := stringLength().WithInputValueDescription(decorate).
		Should(Equal(5))

	assertPasses(t, "abcde", m)
	assertFails(t, "abc", m,
		fmt.Sprintf("expected: string length equal to 5\nactual value was: %s", decorate("abc")))
}

func TestTransformOutputValueDesc(t *testing.T) {
	decorateInt := func(value interface{}) string { return fmt.Sprintf("the number %d", value) }

	m := stringLength().WithOutputValueDescription(decorateInt).
		Should(Equal(5))

	assertPasses(t, "abcde", m)
	assertFails(t, "abc", m,
		"expected: string length equal to the number 5\nactual value was: abc")
}
