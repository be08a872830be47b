package repotests

import (
	"encoding/json"
	"net/http"

	"github.com/openrepo/repo-test-harness/framework/helpers"
	"github.com/openrepo/repo-test-harness/framework/rtest"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/launchdarkly/eventsource"
	"github.com/stretchr/testify/require"
)

func doEventTests(t *rtest.T) {
	t.RequireCapability(repodef.CapabilityEventStream)

	t.Run("ingest publishes an event", doIngestEventTest)
	t.Run("datastream modification publishes an event", doModifyDatastreamEventTest)
	t.Run("datastream purge publishes an event", doPurgeDatastreamEventTest)
	t.Run("object purge publishes an event", doPurgeObjectEventTest)
}

func subscribeToEvents(t *rtest.T) *eventsource.Stream {
	c := requireContext(t)
	path := c.EventsPath
	if path == "" {
		path = "/events"
	}
	req, err := http.NewRequest("GET", c.ServiceBaseURL+path, nil)
	require.NoError(t, err)
	stream, err := eventsource.SubscribeWithRequest("", req)
	require.NoError(t, err)
	t.Defer(stream.Close)
	return stream
}

// awaitEvent reads from the stream until it sees an event of the given type for the
// given PID, failing the test if none arrives in time. Events for other objects are
// skipped, since cleanup from concurrent test scopes may also be publishing.
func awaitEvent(t *rtest.T, stream *eventsource.Stream, eventType, pid string) repodef.EventRep {
	for {
		event := helpers.RequireValueWithMessage(t, stream.Events, defaultEventTimeout,
			"timed out waiting for %q event for %s", eventType, pid)
		var rep repodef.EventRep
		require.NoError(t, json.Unmarshal([]byte(event.Data()), &rep))
		if event.Event() == eventType && rep.PID == pid {
			return rep
		}
		t.DebugLogger().Printf("skipping %s event for %s", event.Event(), rep.PID)
	}
}

func doIngestEventTest(t *rtest.T) {
	stream := subscribeToEvents(t)
	client := newTestClient(t)

	obj, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	_ = awaitEvent(t, stream, repodef.EventTypeIngest, obj.PID)
}

func doModifyDatastreamEventTest(t *rtest.T) {
	stream := subscribeToEvents(t)
	client := newTestClient(t)

	obj, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	_, err = client.AddDatastream(obj.PID, repodef.DatastreamParams{ID: "MODS", Content: "<mods/>"})
	require.NoError(t, err)

	rep := awaitEvent(t, stream, repodef.EventTypeModifyDatastream, obj.PID)
	require.Equal(t, "MODS", rep.DatastreamID)
}

func doPurgeDatastreamEventTest(t *rtest.T) {
	stream := subscribeToEvents(t)
	client := newTestClient(t)

	obj, err := client.IngestObject(repodef.IngestObjectParams{
		Datastreams: []repodef.DatastreamParams{{ID: "DC", Content: "<dc/>"}},
	})
	require.NoError(t, err)
	t.Defer(func() { _ = client.PurgeObject(obj.PID) })

	require.NoError(t, client.PurgeDatastream(obj.PID, "DC"))

	rep := awaitEvent(t, stream, repodef.EventTypePurgeDatastream, obj.PID)
	require.Equal(t, "DC", rep.DatastreamID)
}

func doPurgeObjectEventTest(t *rtest.T) {
	stream := subscribeToEvents(t)
	client := newTestClient(t)

	obj, err := client.IngestObject(repodef.IngestObjectParams{})
	require.NoError(t, err)

	require.NoError(t, client.PurgeObject(obj.PID))

	_ = awaitEvent(t, stream, repodef.EventTypePurgeObject, obj.PID)
}
