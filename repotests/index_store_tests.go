package repotests

import (
	"context"
	"time"

	"github.com/openrepo/repo-test-harness/framework/helpers"
	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Indexing is allowed to lag behind the repository operation, so all index assertions
// poll rather than checking once.
const (
	indexPollTimeout  = time.Second * 10
	indexPollInterval = time.Millisecond * 100
)

func doIndexStoreTests(t *rtest.T) {
	stores := requireContext(t).IndexStores
	if len(stores) == 0 {
		t.SkipWithReason("service reported no index store capabilities")
	}
	for _, store := range stores {
		store := store
		t.Run(store.Name(), func(t *rtest.T) {
			require.NoError(t, store.Reset(context.Background()))
			t.Run("ingest creates an index entry", func(t *rtest.T) {
				doIndexEntryCreatedTest(t, store)
			})
			t.Run("purge removes the index entry", func(t *rtest.T) {
				doIndexEntryRemovedTest(t, store)
			})
		})
	}
}

func doIndexEntryCreatedTest(t *rtest.T, store IndexStore) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Properties: repodef.ObjectProperties{Label: "indexed object"},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	entry := awaitIndexEntry(t, store, obj.PID)
	assert.Equal(t, obj.PID, entry.PID)
	assert.Equal(t, client.Principal(), entry.OwnerID)
	assert.Equal(t, "indexed object", entry.Label)
}

func doIndexEntryRemovedTest(t *rtest.T, store IndexStore) {
	client := newTestClient(t)
	obj, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)

	_ = awaitIndexEntry(t, store, obj.PID)

	require.NoError(t, client.PurgeObject(obj.PID))

	helpers.RequireEventually(t, func() bool {
		_, found, err := store.GetEntry(context.Background(), obj.PID)
		return err == nil && !found
	}, indexPollTimeout, indexPollInterval,
		"index entry for %s was not removed after purge", obj.PID)
}

func awaitIndexEntry(t *rtest.T, store IndexStore, pid string) IndexEntry {
	var entry IndexEntry
	helpers.RequireEventually(t, func() bool {
		e, found, err := store.GetEntry(context.Background(), pid)
		if err != nil || !found {
			return false
		}
		entry = e
		return true
	}, indexPollTimeout, indexPollInterval,
		"no index entry appeared for %s", pid)
	return entry
}
