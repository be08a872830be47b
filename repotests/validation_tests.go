package repotests

import (
	"github.com/openrepo/repo-test-harness/data"
	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doValidationTests(t *rtest.T) {
	t.Run("stored content is well-formed for its MIME type", doStoredContentValidationTest)
	t.Run("defaulted datastream content is well-formed XML", doDefaultMIMETypeValidationTest)
}

// Ingests each fixture and checks that the content the service hands back still passes
// the validator registered for the datastream's MIME type. A service that mangles content
// on the way through storage fails here even if the round-trip equality tests pass.
func doStoredContentValidationTest(t *rtest.T) {
	registry := DefaultValidatorRegistry()
	fixtures, err := data.LoadIngestFixtures()
	require.NoError(t, err)

	for _, fixture := range fixtures {
		fixture := fixture
		t.Run(fixture.Name, func(t *rtest.T) {
			client := newTestClient(t)
			obj, err := client.IngestObject(fixture.Object)
			require.NoError(t, err)
			t.Defer(func() { _ = client.PurgeObject(obj.PID) })

			for _, params := range fixture.Object.Datastreams {
				ds, err := client.GetDatastream(obj.PID, params.ID)
				require.NoError(t, err)
				validator, ok := registry.ValidatorFor(ds.ID, ds.MIMEType)
				if !ok {
					continue
				}
				assert.NoError(t, validator.Validate([]byte(ds.Content)),
					"content of datastream %q (%s) failed validation", ds.ID, ds.MIMEType)
			}
		})
	}
}

func doDefaultMIMETypeValidationTest(t *rtest.T) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Datastreams: []repodef.DatastreamParams{{ID: "DC", Content: "<dc/>"}},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	ds, err := client.GetDatastream(obj.PID, "DC")
	require.NoError(t, err)
	assert.Equal(t, repodef.DefaultDatastreamMIMEType, ds.MIMEType)
	assert.NoError(t, XMLValidator{}.Validate([]byte(ds.Content)))
}
