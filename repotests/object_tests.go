package repotests

import (
	"errors"

	"github.com/openrepo/repo-test-harness/data"
	m "github.com/openrepo/repo-test-harness/framework/matchers"
	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/repoclient"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doObjectTests(t *rtest.T) {
	t.Run("ingest assigns PID", doIngestAssignsPIDTest)
	t.Run("ingest with explicit PID", doIngestExplicitPIDTest)
	t.Run("ingest applies datastream defaults", doIngestDefaultsTest)
	t.Run("ingest fixtures", doIngestFixturesTest)
	t.Run("get after purge fails", doPurgeObjectTest)
	t.Run("owner listing", doOwnerListingTest)
}

func doIngestAssignsPIDTest(t *rtest.T) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Properties: repodef.ObjectProperties{Label: "pid assignment test"},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	assert.NotEmpty(t, obj.PID)
	assert.Equal(t, repodef.ObjectStateActive, obj.State)
	assert.Equal(t, client.Principal(), obj.OwnerID)
}

func doIngestExplicitPIDTest(t *rtest.T) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Properties: repodef.ObjectProperties{PID: "contract:explicit-pid"},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	assert.Equal(t, "contract:explicit-pid", obj.PID)

	// a second ingest with the same PID must be rejected
	_, err = client.IngestObject(repodef.IngestObjectParams{
		Properties: repodef.ObjectProperties{PID: "contract:explicit-pid"},
	})
	assert.Error(t, err)
}

func doIngestDefaultsTest(t *rtest.T) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Datastreams: []repodef.DatastreamParams{{ID: "DC", Content: "<dc/>"}},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	m.RequireThat(t, obj, HasDatastream("DC"))
	ds, err := client.GetDatastream(obj.PID, "DC")
	require.NoError(t, err)
	m.AssertThat(t, ds, DatastreamWithMIMEType("text/xml"))
	assert.Equal(t, repodef.ObjectStateActive, ds.State)
	assert.Equal(t, repodef.ControlGroupManaged, ds.ControlGroup)
	assert.True(t, ds.Versionable)
}

func doIngestFixturesTest(t *rtest.T) {
	fixtures, err := data.LoadIngestFixtures()
	require.NoError(t, err)

	for _, fixture := range fixtures {
		fixture := fixture
		t.Run(fixture.Name, func(t *rtest.T) {
			client := newTestClient(t)
			obj, err := client.IngestObject(fixture.Object)
			require.NoError(t, err)
			t.Defer(func() { _ = client.PurgeObject(obj.PID) })

			for _, ds := range fixture.Object.Datastreams {
				m.AssertThat(t, obj, HasDatastream(ds.ID))
			}
		})
	}
}

func doPurgeObjectTest(t *rtest.T) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)

	require.NoError(t, client.PurgeObject(obj.PID))

	_, err = client.GetObject(obj.PID)
	assert.True(t, errors.Is(err, repoclient.ErrNotFound), "expected not-found error, got: %v", err)
}

func doOwnerListingTest(t *rtest.T) {
	t.RequireCapability(repodef.CapabilityOwnerQuery)

	client := newTestClient(t)
	obj1, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj1.PID) })
	obj2, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj2.PID) })

	pids, err := client.ListObjectsByOwner(client.Principal())
	require.NoError(t, err)
	m.AssertThat(t, pids, m.Items(m.Equal(obj1.PID), m.Equal(obj2.PID)))
}
