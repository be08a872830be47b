// Package repotests contains the domain-specific repository test logic.
//
// Tests in this package use other packages as follows:
//
// data: ingest fixture schemas and loader
//
// rtest: the basic test scope framework
//
// repoclient: the HTTP client for the service under test
//
// repodef: types used in communication with the repository service
package repotests
