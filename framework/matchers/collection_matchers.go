package matchers

import (
	"fmt"
	"reflect"
)

// Length is a matcher for a slice, map, or string value that tests its length.
func Length(expectedLength int) Matcher {
	return New(
		func(value interface{}) bool {
			v := reflect.ValueOf(value)
			switch v.Kind() {
			case reflect.Slice, reflect.Map, reflect.String:
				return v.Len() == expectedLength
			default:
				return false
			}
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("length of %d", expectedLength)
		},
	)
}

// Items is a matcher for a slice value. It tests that the slice has the same number of
// elements as the number of parameters, and that each matcher matches the item in the
// corresponding position.
//
//	s := []int{6,2}
//	matchers.Items(matchers.Equal(6), matchers.Equal(2)).Test(s) // pass
func Items(matchers ...Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			v := reflect.ValueOf(value)
			if v.Type().Kind() != reflect.Slice {
				return false
			}
			if v.Len() != len(matchers) {
				return false
			}
			for i, m := range matchers {
				if !m.test(v.Index(i).Interface()) {
					return false
				}
			}
			return true
		},
		func(value interface{}, desc DescribeValueFunc) string {
			v := reflect.ValueOf(value)
			if v.Type().Kind() != reflect.Slice {
				return "a slice"
			}
			if v.Len() != len(matchers) {
				return fmt.Sprintf("should have %d item(s) (had %d)", len(matchers), v.Len())
			}
			return "items in order: " + describeMatchersList(matchers, value, ", ")
		},
	)
}

// ItemsInAnyOrder is a matcher for a slice value. It tests that the slice contains the
// same number of elements as the number of parameters, and that each parameter is a
// matcher that matches one item in the slice.
//
//	s := []int{6,2}
//	matchers.ItemsInAnyOrder(matchers.Equal(2), matchers.Equal(6)).Test(s) // pass
func ItemsInAnyOrder(matchers ...Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			v := reflect.ValueOf(value)
			if v.Type().Kind() != reflect.Slice {
				return false
			}
			if v.Len() != len(matchers) {
				return false
			}
			foundCount := 0
			for _, m := range matchers {
				for j := 0; j < v.Len(); j++ {
					if m.test(v.Index(j).Interface()) {
						foundCount++
						break
					}
				}
			}
			return foundCount == len(matchers)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			// It should be possible to make a better failure message where it lists the specific
			// matchers that weren't found, and/or the non-matched items. For now, it's just
			// spitting out the whole condition.
			v := reflect.ValueOf(value)
			if v.Type().Kind() != reflect.Slice {
				return "a slice"
			}
			if v.Len() != len(matchers) {
				return fmt.Sprintf("should have %d item(s) (had %d)", len(matchers), v.Len())
			}
			return "contains in any order: " + describeMatchersList(matchers, value, ", ")
		},
	)
}
