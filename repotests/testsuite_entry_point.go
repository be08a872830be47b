package repotests

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/framework/harness"
	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/repodef"
)

const defaultEventTimeout = time.Second * 5

// SuiteOptions holds the harness-level settings that are not part of the service's
// status response.
type SuiteOptions struct {
	// Principal is the owner identity that tests ingest objects under. Empty means a
	// built-in default.
	Principal string

	// AdminPrincipal is the administrative owner identity that purge-user-objects must
	// refuse. Empty means a built-in default.
	AdminPrincipal string

	// RedisAddress, ConsulAddress, and DynamoDBEndpoint locate the external index
	// stores, for services that have the corresponding index-* capabilities.
	RedisAddress     string
	ConsulAddress    string
	DynamoDBEndpoint string
}

// RunRepoTestSuite runs the full repository contract test suite against the service that
// the harness connected to.
func RunRepoTestSuite(
	testHarness *harness.TestHarness,
	filter rtest.Filter,
	testLogger rtest.TestLogger,
	options SuiteOptions,
) rtest.Results {
	serviceInfo := testHarness.ServiceInfo()
	capabilities := serviceInfo.Capabilities

	fmt.Printf("Running repository contract test suite against %s\n\n", serviceInfo.Name)
	if sdf, ok := filter.(rtest.SelfDescribingFilter); ok {
		sdf.Describe(os.Stdout, capabilities, importantCapabilities())
	}

	context := RepoTestContext{
		ServiceBaseURL: testHarness.ServiceBaseURL(),
		Principal:      defaultPrincipal,
		AdminPrincipal: defaultAdminPrincipal,
	}
	if options.Principal != "" {
		context.Principal = options.Principal
	}
	if options.AdminPrincipal != "" {
		context.AdminPrincipal = options.AdminPrincipal
	}

	// The status response may carry properties beyond the basic ServiceInfoBase, such as
	// the path of the notification feed.
	var status repodef.StatusRep
	if err := json.Unmarshal(serviceInfo.FullData, &status); err == nil {
		context.EventsPath = status.EventsPath
	}

	context.IndexStores = configureIndexStores(capabilities, options)

	config := rtest.TestConfiguration{
		Filter:       filter,
		Capabilities: capabilities,
		TestLogger:   testLogger,
		Context:      context,
	}

	return rtest.Run(config, func(t *rtest.T) {
		t.Run("objects", doObjectTests)
		t.Run("datastreams", doDatastreamTests)
		t.Run("datastream validation", doValidationTests)
		t.Run("purge user objects", doPurgeUserObjectsTests)
		t.Run("events", doEventTests)
		t.Run("index stores", doIndexStoreTests)
	})
}

func importantCapabilities() framework.Capabilities {
	return framework.Capabilities{
		repodef.CapabilityDatastreamVersioning,
		repodef.CapabilityEventStream,
		repodef.CapabilityOwnerQuery,
	}
	// We don't include the index-* capabilities here because most deployments use at
	// most one external index backend - the others being absent is not a gap in coverage
}
