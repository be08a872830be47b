package matchers

import "testing"

func TestLength(t *testing.T) {
	assertPasses(t, []string{"a", "b"}, Length(2))
	assertPasses(t, "ab", Length(2))
	assertFails(t, []string{"a"}, Length(2), "expected: length of 2\nactual value was: [a]")
}

func TestItems(t *testing.T) {
	slice := []string{"x", "y"}

	assertPasses(t, slice, Items(Equal("x"), Equal("y")))

	assertFails(t, slice, Items(Equal("y"), Equal("x")),
		"expected: items in order: (equal to y), (equal to x)\nactual value was: [x y]")
	assertFails(t, slice, Items(Equal("x")),
		"expected: should have 1 item(s) (had 2)\nactual value was: [x y]")
}

func TestItemsInAnyOrder(t *testing.T) {
	slice := []string{"y", "z", "x"}

	assertPasses(t, slice, ItemsInAnyOrder(Equal("x"), Equal("y"), Equal("x")))
	assertPasses(t, slice, ItemsInAnyOrder(Equal("y"), Equal("z"), Equal("x")))

	assertFails(t, slice, ItemsInAnyOrder(Equal("x"), Equal("y")),
		"expected: should have 2 item(s) (had 3)\nactual value was: [y z x]")

	assertFails(t, slice, ItemsInAnyOrder(Equal("x"), Equal("a"), Equal("z")),
		"expected: contains in any order: (equal to x), (equal to a), (equal to z)"+
			"\nactual value was: [y z x]")
}
