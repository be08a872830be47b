package helpers

import "sort"

// CopyOf returns a copy of a slice, so the original can be modified safely.
func CopyOf[V any](slice []V) []V {
	return append([]V(nil), slice...)
}

// IfElse returns valueIfTrue or valueIfFalse depending on isTrue.
func IfElse[V any](isTrue bool, valueIfTrue, valueIfFalse V) V {
	if isTrue {
		return valueIfTrue
	}
	return valueIfFalse
}

// SliceContains returns true if and only if the slice has an element that equals the value.
func SliceContains[V comparable](value V, slice []V) bool {
	for _, element := range slice {
		if element == value {
			return true
		}
	}
	return false
}

// Sorted returns a sorted copy of a string slice, leaving the original unchanged.
func Sorted(slice []string) []string {
	ret := CopyOf(slice)
	sort.Strings(ret)
	return ret
}
