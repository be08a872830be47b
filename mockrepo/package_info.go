// Package mockrepo provides an in-process implementation of the repository service
// protocol in repodef. The harness's own unit tests run against it so they do not need a
// real repository deployment.
package mockrepo
