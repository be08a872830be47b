package repotests

import (
	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/repoclient"
)

const defaultPrincipal = "contract-tests"
const defaultAdminPrincipal = "repoAdmin"

// RepoTestContext is the application context attached to every test scope: where the
// service is, which principals to use, and which external index stores to verify.
type RepoTestContext struct {
	// ServiceBaseURL is the base URL of the repository service under test.
	ServiceBaseURL string

	// Principal is the owner identity that tests ingest objects under.
	Principal string

	// AdminPrincipal is the administrative owner identity that purge-user-objects must
	// refuse to touch.
	AdminPrincipal string

	// EventsPath is the path of the service's SSE notification feed, if it reported one.
	EventsPath string

	// IndexStores are the external index backends to verify, matching the service's
	// index-* capabilities.
	IndexStores []IndexStore
}

func requireContext(t *rtest.T) RepoTestContext {
	if c, ok := t.Context().(RepoTestContext); ok {
		return c
	}
	panic("RepoTestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// newTestClient creates a repository client for the current test scope, logging its
// traffic to the test's debug output.
func newTestClient(t *rtest.T) *repoclient.Client {
	c := requireContext(t)
	return repoclient.New(c.ServiceBaseURL, c.Principal, t.DebugLogger())
}
