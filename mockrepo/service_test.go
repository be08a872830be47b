package mockrepo

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/framework/helpers"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/launchdarkly/eventsource"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceStatusResource(t *testing.T) {
	service := NewService(framework.Capabilities{repodef.CapabilityEventStream}, framework.NullLogger())

	httphelpers.WithServer(service, func(server *httptest.Server) {
		resp, err := http.Get(server.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)

		var status repodef.StatusRep
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
		assert.Equal(t, "mock-repository", status.Name)
		assert.True(t, status.Capabilities.Has(repodef.CapabilityEventStream))
		assert.Equal(t, "/events", status.EventsPath)
	})
}

func TestServiceObjectLifecycle(t *testing.T) {
	service := NewService(nil, framework.NullLogger())

	httphelpers.WithServer(service, func(server *httptest.Server) {
		params := repodef.IngestObjectParams{
			Properties: repodef.ObjectProperties{Label: "test object", OwnerID: "alice"},
			Datastreams: []repodef.DatastreamParams{
				repodef.DatastreamParams{ID: "DC", Content: "<dc/>"}.WithDefaults(),
			},
		}
		obj := ingestObject(t, server, params)
		require.NotEmpty(t, obj.PID)
		assert.Equal(t, repodef.ObjectStateActive, obj.State)
		require.Len(t, obj.Datastreams, 1)
		assert.Equal(t, "DC", obj.Datastreams[0].ID)
		assert.Equal(t, "text/xml", obj.Datastreams[0].MIMEType)
		assert.Empty(t, obj.Datastreams[0].Content) // content only served by the datastream resource

		resp, err := http.Get(server.URL + "/objects/" + obj.PID + "/datastreams/DC")
		require.NoError(t, err)
		var ds repodef.DatastreamRep
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ds))
		_ = resp.Body.Close()
		assert.Equal(t, "<dc/>", ds.Content)

		req, _ := http.NewRequest("DELETE", server.URL+"/objects/"+obj.PID, nil)
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, 204, resp.StatusCode)

		resp, err = http.Get(server.URL + "/objects/" + obj.PID)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestServiceVersionsDatastreamOnReplace(t *testing.T) {
	service := NewService(framework.Capabilities{repodef.CapabilityDatastreamVersioning}, framework.NullLogger())

	httphelpers.WithServer(service, func(server *httptest.Server) {
		obj := ingestObject(t, server, repodef.IngestObjectParams{
			Properties: repodef.ObjectProperties{OwnerID: "alice"},
			Datastreams: []repodef.DatastreamParams{
				repodef.DatastreamParams{ID: "MODS", Content: "<mods/>"}.WithDefaults(),
			},
		})

		replacement := repodef.DatastreamParams{ID: "MODS", Content: "<mods><title/></mods>"}.WithDefaults()
		data, _ := json.Marshal(replacement)
		req, _ := http.NewRequest("PUT", server.URL+"/objects/"+obj.PID+"/datastreams/MODS",
			bytes.NewBuffer(data))
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		var ds repodef.DatastreamRep
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ds))
		_ = resp.Body.Close()
		assert.Equal(t, 2, ds.Versions)
	})
}

func TestServicePublishesEvents(t *testing.T) {
	service := NewService(framework.Capabilities{repodef.CapabilityEventStream}, framework.NullLogger())

	httphelpers.WithServer(service, func(server *httptest.Server) {
		req, _ := http.NewRequest("GET", server.URL+"/events", nil)
		stream, err := eventsource.SubscribeWithRequest("", req)
		require.NoError(t, err)
		defer stream.Close()

		obj := ingestObject(t, server, repodef.IngestObjectParams{
			Properties: repodef.ObjectProperties{OwnerID: "alice"},
		})

		event := requireEvent(t, stream)
		assert.Equal(t, repodef.EventTypeIngest, event.Event())
		var rep repodef.EventRep
		require.NoError(t, json.Unmarshal([]byte(event.Data()), &rep))
		assert.Equal(t, obj.PID, rep.PID)
	})
}

func ingestObject(t *testing.T, server *httptest.Server, params repodef.IngestObjectParams) repodef.ObjectRep {
	data, _ := json.Marshal(params)
	resp, err := http.Post(server.URL+"/objects", "application/json", bytes.NewBuffer(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 201, resp.StatusCode)
	var obj repodef.ObjectRep
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&obj))
	return obj
}

func requireEvent(t *testing.T, stream *eventsource.Stream) eventsource.Event {
	return helpers.RequireValueWithMessage(t, stream.Events, time.Second*5, "timed out waiting for event")
}
