// Package repoclient is an HTTP client for the repository service protocol defined in
// repodef. The test suites use it for all interactions with the service under test.
package repoclient
