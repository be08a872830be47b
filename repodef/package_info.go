// Package repodef contains definitions for the REST protocol that repository services
// under test must implement. See the top-level README.md for more details.
//
// The package is used by the test harness, but can also be imported by any repository
// service code that is Go-based.
package repodef
