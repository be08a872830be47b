package matchers

import "testing"

func TestEqual(t *testing.T) {
	assertPasses(t, 3, Equal(3))
	assertFails(t, 4, Equal(3), "expected: equal to 3\nactual value was: 4")

	assertPasses(t, map[string]interface{}{"a": []int{1, 2}},
		Equal(map[string]interface{}{"a": []int{1, 2}}))
}

func TestStringContains(t *testing.T) {
	assertPasses(t, "finding", StringContains("find"))
	assertFails(t, "missing", StringContains("find"),
		"expected: contains \"find\"\nactual value was: missing")
}

func TestJSONEqual(t *testing.T) {
	assertPasses(t, `{"b": 2, "a": 1}`, JSONEqual(`{"a":1,"b":2}`))
	assertPasses(t, []byte(`[1, 2]`), JSONEqual(`[1,2]`))
	assertPasses(t, map[string]int{"a": 1}, JSONEqual(`{"a":1}`))

	assertFails(t, `{"a":1}`, JSONEqual(`{"a":2}`),
		"expected: JSON equal to {\"a\":2}\nactual value was: {\"a\":1}")
}
