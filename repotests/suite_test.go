package repotests

import (
	"net/http/httptest"
	"testing"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/mockrepo"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/stretchr/testify/assert"
)

func mockServiceCapabilities() framework.Capabilities {
	return framework.Capabilities{
		repodef.CapabilityDatastreamVersioning,
		repodef.CapabilityEventStream,
		repodef.CapabilityOwnerQuery,
	}
}

// Runs a piece of the suite against the in-memory repository, returning the accumulated
// results so the caller can assert on them.
func runSuiteAgainstMock(action func(*rtest.T)) rtest.Results {
	service := mockrepo.NewService(mockServiceCapabilities(), nil)
	server := httptest.NewServer(service)
	defer server.Close()
	defer service.Events().Close()

	config := rtest.TestConfiguration{
		Capabilities: mockServiceCapabilities(),
		Context: RepoTestContext{
			ServiceBaseURL: server.URL,
			Principal:      defaultPrincipal,
			AdminPrincipal: defaultAdminPrincipal,
			EventsPath:     "/events",
		},
	}
	return rtest.Run(config, action)
}

func assertSuiteResultsOK(t *testing.T, results rtest.Results) {
	for _, failure := range results.Failures {
		for _, err := range failure.Errors {
			t.Errorf("[%s]: %s", failure.TestID, err)
		}
	}
	assert.True(t, results.OK())
	assert.NotEmpty(t, results.Tests)
}

func TestObjectSuiteAgainstMockRepository(t *testing.T) {
	assertSuiteResultsOK(t, runSuiteAgainstMock(doObjectTests))
}

func TestDatastreamSuiteAgainstMockRepository(t *testing.T) {
	assertSuiteResultsOK(t, runSuiteAgainstMock(doDatastreamTests))
}

func TestValidationSuiteAgainstMockRepository(t *testing.T) {
	assertSuiteResultsOK(t, runSuiteAgainstMock(doValidationTests))
}

func TestPurgeUserObjectsSuiteAgainstMockRepository(t *testing.T) {
	assertSuiteResultsOK(t, runSuiteAgainstMock(doPurgeUserObjectsTests))
}

func TestEventSuiteAgainstMockRepository(t *testing.T) {
	assertSuiteResultsOK(t, runSuiteAgainstMock(doEventTests))
}

func TestIndexStoreSuiteSkipsWithoutIndexCapabilities(t *testing.T) {
	results := runSuiteAgainstMock(doIndexStoreTests)
	assert.True(t, results.OK())
}
