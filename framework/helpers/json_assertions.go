package helpers

import "github.com/stretchr/testify/assert"

// AssertJSONEqual asserts that two JSON strings represent the same value, printing a
// diff on mismatch.
func AssertJSONEqual(t assert.TestingT, expectedJSONString, actualJSONString string) bool {
	return assert.JSONEq(t, expectedJSONString, actualJSONString)
}
