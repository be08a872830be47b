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

func doPurgeUserObjectsTests(t *rtest.T) {
	t.RequireCapability(repodef.CapabilityOwnerQuery)

	t.Run("purges every object owned by the user", doPurgeUserObjectsRemovesAllTest)
	t.Run("leaves other owners' objects alone", doPurgeUserObjectsScopedToOwnerTest)
	t.Run("refuses the administrative principal", doPurgeUserObjectsRefusesAdminTest)
}

func newOwnedClient(t *rtest.T, owner string) *repoclient.Client {
	c := requireContext(t)
	return repoclient.New(c.ServiceBaseURL, owner, t.DebugLogger())
}

func doPurgeUserObjectsRemovesAllTest(t *rtest.T) {
	client := newOwnedClient(t, "purge-target-user")
	obj1, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj1.PID) })
	obj2, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj2.PID) })

	purged, err := client.PurgeUserObjects("purge-target-user", requireContext(t).AdminPrincipal)
	require.NoError(t, err)
	m.AssertThat(t, purged, m.Items(m.Equal(obj1.PID), m.Equal(obj2.PID)))

	remaining, err := client.ListObjectsByOwner("purge-target-user")
	require.NoError(t, err)
	assert.Len(t, remaining, 0)
}

func doPurgeUserObjectsScopedToOwnerTest(t *rtest.T) {
	doomed := newOwnedClient(t, "purge-target-user")
	survivor := newTestClient(t)

	doomedObj, err := doomed.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = doomed.PurgeObject(doomedObj.PID) })
	survivorObj, err := survivor.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = survivor.PurgeObject(survivorObj.PID) })

	_, err = doomed.PurgeUserObjects("purge-target-user", requireContext(t).AdminPrincipal)
	require.NoError(t, err)

	_, err = survivor.GetObject(survivorObj.PID)
	assert.NoError(t, err)
	_, err = doomed.GetObject(doomedObj.PID)
	assert.True(t, errors.Is(err, repoclient.ErrNotFound), "expected not-found error, got: %v", err)
}

func doPurgeUserObjectsRefusesAdminTest(t *rtest.T) {
	admin := requireContext(t).AdminPrincipal
	adminClient := newOwnedClient(t, admin)

	obj, err := adminClient.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = adminClient.PurgeObject(obj.PID) })

	_, err = adminClient.PurgeUserObjects(admin, admin)
	require.Error(t, err)

	// the admin's object must be untouched
	_, err = adminClient.GetObject(obj.PID)
	assert.NoError(t, err)
}
