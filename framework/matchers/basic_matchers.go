package matchers

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Equal is a matcher that tests whether the input value matches the expected value
// according to reflect.DeepEqual.
func Equal(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return reflect.DeepEqual(value, expectedValue)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("equal to %s", desc(expectedValue))
		},
	)
}

// StringContains is a matcher for a string value that tests for a substring.
func StringContains(substring string) Matcher {
	return New(
		func(value interface{}) bool {
			s, ok := value.(string)
			return ok && strings.Contains(s, substring)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("contains %q", substring)
		},
	).EnsureType("")
}

// JSONEqual is a matcher that compares two values as JSON documents, ignoring property
// ordering and whitespace. Either value may be a raw JSON string or []byte, or any value
// that can be marshalled to JSON.
func JSONEqual(expectedValue interface{}) Matcher {
	expected := canonicalJSON(expectedValue)
	return New(
		func(value interface{}) bool {
			return canonicalJSON(value).Equal(expected)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("JSON equal to %s", expected.JSONString())
		},
	).WithValueDescription(func(value interface{}) string {
		return canonicalJSON(value).JSONString()
	})
}

func canonicalJSON(value interface{}) ldvalue.Value {
	switch v := value.(type) {
	case ldvalue.Value:
		return v
	case string:
		return ldvalue.Parse([]byte(v))
	case []byte:
		return ldvalue.Parse(v)
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return ldvalue.Null()
		}
		return ldvalue.Parse(data)
	}
}
