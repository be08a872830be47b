// Package framework contains the low-level test harness infrastructure that is not
// specific to any one repository feature. The base package contains shared types such
// as Logger; other components are in the subpackages harness and rtest.
//
// The general model is:
//
// 1. The test harness communicates with a repository service, which exposes a root
// endpoint for querying its status and description (GET) and resource endpoints for
// creating and manipulating repository objects and their datastreams.
//
// 2. The test harness can expose any number of mock endpoints to receive callback
// requests from the repository service.
//
// 3. There is a general notion of a test context which is similar to Go's testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results.
//
// The domain-specific code that knows what is being tested is responsible for
// providing the requests to send to the repository service, the HTTP handlers for
// mock endpoints, and domain-specific test APIs on top of the test context.
package framework
