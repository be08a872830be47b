package repotests

import (
	"errors"

	m "github.com/openrepo/repo-test-harness/framework/matchers"
	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/repoclient"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doDatastreamTests(t *rtest.T) {
	t.Run("add and get", doAddDatastreamTest)
	t.Run("presence and absence", doDatastreamPresenceTest)
	t.Run("purge", doPurgeDatastreamTest)
	t.Run("replace creates new version", doDatastreamVersioningTest)
}

func doAddDatastreamTest(t *rtest.T) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	added, err := client.AddDatastream(obj.PID, repodef.DatastreamParams{
		ID:      "MODS",
		Label:   "descriptive metadata",
		Content: "<mods/>",
	})
	require.NoError(t, err)
	assert.Equal(t, "MODS", added.ID)

	ds, err := client.GetDatastream(obj.PID, "MODS")
	require.NoError(t, err)
	assert.Equal(t, "<mods/>", ds.Content)
	assert.Equal(t, len("<mods/>"), ds.Size)
}

func doDatastreamPresenceTest(t *rtest.T) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Datastreams: []repodef.DatastreamParams{
			{ID: "DC", Content: "<dc/>"},
			{ID: "RELS-EXT", Content: "<rdf/>"},
		},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	current, err := client.GetObject(obj.PID)
	require.NoError(t, err)
	m.AssertThat(t, current, m.AllOf(
		HasDatastream("DC"),
		HasDatastream("RELS-EXT"),
		m.Not(HasDatastream("MODS")),
	))
	m.AssertThat(t, current, DatastreamIDs().Should(m.Length(2)))
}

func doPurgeDatastreamTest(t *rtest.T) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Datastreams: []repodef.DatastreamParams{{ID: "DC", Content: "<dc/>"}},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	require.NoError(t, client.PurgeDatastream(obj.PID, "DC"))

	_, err = client.GetDatastream(obj.PID, "DC")
	assert.True(t, errors.Is(err, repoclient.ErrNotFound), "expected not-found error, got: %v", err)

	current, err := client.GetObject(obj.PID)
	require.NoError(t, err)
	m.AssertThat(t, current, m.Not(HasDatastream("DC")))
}

func doDatastreamVersioningTest(t *rtest.T) {
	t.RequireCapability(repodef.CapabilityDatastreamVersioning)

	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Datastreams: []repodef.DatastreamParams{{ID: "MODS", Content: "<mods/>"}},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	replaced, err := client.AddDatastream(obj.PID, repodef.DatastreamParams{
		ID:      "MODS",
		Content: "<mods><title>updated</title></mods>",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, replaced.Versions)

	ds, err := client.GetDatastream(obj.PID, "MODS")
	require.NoError(t, err)
	assert.Equal(t, "<mods><title>updated</title></mods>", ds.Content)
}
