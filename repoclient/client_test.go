package repoclient

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/mockrepo"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrincipal = "testuser"
const adminPrincipal = "repoAdmin"

func withClient(t *testing.T, action func(*Client)) {
	service := mockrepo.NewService(nil, framework.NullLogger())
	httphelpers.WithServer(service, func(server *httptest.Server) {
		action(New(server.URL, testPrincipal, framework.NullLogger()))
	})
}

func TestIngestObjectAppliesPrincipalAndDefaults(t *testing.T) {
	withClient(t, func(c *Client) {
		obj, err := c.IngestObject(repodef.IngestObjectParams{
			Properties:  repodef.ObjectProperties{Label: "defaults test"},
			Datastreams: []repodef.DatastreamParams{{ID: "DC", Content: "<dc/>"}},
		})
		require.NoError(t, err)
		assert.Equal(t, testPrincipal, obj.OwnerID)
		require.Len(t, obj.Datastreams, 1)
		ds := obj.Datastreams[0]
		assert.Equal(t, "text/xml", ds.MIMEType)
		assert.Equal(t, repodef.ObjectStateActive, ds.State)
		assert.Equal(t, repodef.ControlGroupManaged, ds.ControlGroup)
		assert.True(t, ds.Versionable)
	})
}

func TestDatastreamRoundTrip(t *testing.T) {
	withClient(t, func(c *Client) {
		obj, err := c.IngestObject(repodef.IngestObjectParams{})
		require.NoError(t, err)

		_, err = c.AddDatastream(obj.PID, repodef.DatastreamParams{ID: "MODS", Content: "<mods/>"})
		require.NoError(t, err)

		ds, err := c.GetDatastream(obj.PID, "MODS")
		require.NoError(t, err)
		assert.Equal(t, "<mods/>", ds.Content)

		require.NoError(t, c.PurgeDatastream(obj.PID, "MODS"))

		_, err = c.GetDatastream(obj.PID, "MODS")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestGetObjectNotFound(t *testing.T) {
	withClient(t, func(c *Client) {
		_, err := c.GetObject("test:does-not-exist")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestListObjectsByOwner(t *testing.T) {
	withClient(t, func(c *Client) {
		obj1, err := c.IngestObject(repodef.IngestObjectParams{})
		require.NoError(t, err)
		obj2, err := c.IngestObject(repodef.IngestObjectParams{})
		require.NoError(t, err)
		_, err = c.IngestObject(repodef.IngestObjectParams{
			Properties: repodef.ObjectProperties{OwnerID: "someoneelse"},
		})
		require.NoError(t, err)

		pids, err := c.ListObjectsByOwner(testPrincipal)
		require.NoError(t, err)
		assert.Equal(t, []string{obj1.PID, obj2.PID}, pids)
	})
}

func TestPurgeUserObjects(t *testing.T) {
	withClient(t, func(c *Client) {
		obj1, err := c.IngestObject(repodef.IngestObjectParams{})
		require.NoError(t, err)
		obj2, err := c.IngestObject(repodef.IngestObjectParams{})
		require.NoError(t, err)

		purged, err := c.PurgeUserObjects(testPrincipal, adminPrincipal)
		require.NoError(t, err)
		assert.Equal(t, []string{obj1.PID, obj2.PID}, purged)

		pids, err := c.ListObjectsByOwner(testPrincipal)
		require.NoError(t, err)
		assert.Empty(t, pids)
	})
}

func TestPurgeUserObjectsRefusesAdminPrincipal(t *testing.T) {
	withClient(t, func(c *Client) {
		_, err := c.IngestObject(repodef.IngestObjectParams{
			Properties: repodef.ObjectProperties{OwnerID: adminPrincipal},
		})
		require.NoError(t, err)

		purged, err := c.PurgeUserObjects(adminPrincipal, adminPrincipal)
		require.Error(t, err)
		assert.Empty(t, purged)

		// the admin's objects must be untouched
		pids, err := c.ListObjectsByOwner(adminPrincipal)
		require.NoError(t, err)
		assert.Len(t, pids, 1)
	})
}
