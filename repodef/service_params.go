package repodef

import "github.com/openrepo/repo-test-harness/framework/harness"

const (
	CapabilityDatastreamVersioning = "datastream-versioning"
	CapabilityEventStream          = "event-stream"
	CapabilityOwnerQuery           = "owner-query"

	CapabilityIndexRedis    = "index-redis"
	CapabilityIndexConsul   = "index-consul"
	CapabilityIndexDynamoDB = "index-dynamodb"
)

// StatusRep is the response body of the service's status resource.
type StatusRep struct {
	harness.ServiceInfoBase

	// EventsPath is the path of the SSE notification feed, relative to the service base
	// URL. Only meaningful if the service has the "event-stream" capability.
	EventsPath string `json:"eventsPath,omitempty"`
}
