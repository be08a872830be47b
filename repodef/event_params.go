package repodef

import "github.com/launchdarkly/go-sdk-common/v3/ldtime"

// Event types published on the service's SSE notification feed.
const (
	EventTypeIngest           = "ingest"
	EventTypeModifyDatastream = "modifyDatastream"
	EventTypePurgeDatastream  = "purgeDatastream"
	EventTypePurgeObject      = "purgeObject"
)

// EventRep is the JSON data of a single notification event.
type EventRep struct {
	Type         string                     `json:"type"`
	PID          string                     `json:"pid"`
	DatastreamID string                     `json:"datastreamId,omitempty"`
	TimestampMS  ldtime.UnixMillisecondTime `json:"timestampMs,omitempty"`
}
