package repodef

import (
	o "github.com/openrepo/repo-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
)

type ObjectState string

const (
	ObjectStateActive   ObjectState = "A"
	ObjectStateInactive ObjectState = "I"
	ObjectStateDeleted  ObjectState = "D"
)

type ControlGroup string

const (
	ControlGroupManaged  ControlGroup = "M"
	ControlGroupInline   ControlGroup = "X"
	ControlGroupExternal ControlGroup = "E"
	ControlGroupRedirect ControlGroup = "R"
)

// Default values applied to datastream descriptors whose optional fields are unset.
const (
	DefaultDatastreamState        = ObjectStateActive
	DefaultDatastreamControlGroup = ControlGroupManaged
	DefaultDatastreamMIMEType     = "text/xml"
	DefaultDatastreamVersionable  = true
)

// ObjectProperties describes a repository object to be ingested.
type ObjectProperties struct {
	// PID is the persistent identifier; if empty, the service assigns one.
	PID     string               `json:"pid,omitempty"`
	Label   string               `json:"label,omitempty"`
	State   o.Maybe[ObjectState] `json:"state,omitempty"`
	OwnerID string               `json:"ownerId,omitempty"`
}

// DatastreamParams describes a datastream to attach to an object. Fields left unset are
// filled in by WithDefaults before the descriptor goes on the wire.
type DatastreamParams struct {
	ID           string                `json:"id"`
	Label        string                `json:"label,omitempty"`
	MIMEType     string                `json:"mimeType,omitempty"`
	State        o.Maybe[ObjectState]  `json:"state,omitempty"`
	ControlGroup o.Maybe[ControlGroup] `json:"controlGroup,omitempty"`
	Versionable  o.Maybe[bool]         `json:"versionable,omitempty"`
	Content      string                `json:"content,omitempty"`
}

// WithDefaults returns a copy of the descriptor with every unset optional field replaced
// by its default: state "A", control group "M", MIME type "text/xml", versionable true.
func (p DatastreamParams) WithDefaults() DatastreamParams {
	ret := p
	if ret.MIMEType == "" {
		ret.MIMEType = DefaultDatastreamMIMEType
	}
	if !ret.State.IsDefined() {
		ret.State = o.Some(DefaultDatastreamState)
	}
	if !ret.ControlGroup.IsDefined() {
		ret.ControlGroup = o.Some(DefaultDatastreamControlGroup)
	}
	if !ret.Versionable.IsDefined() {
		ret.Versionable = o.Some(DefaultDatastreamVersionable)
	}
	return ret
}

// IngestObjectParams is the request body for ingesting an object together with its
// initial datastreams.
type IngestObjectParams struct {
	Properties  ObjectProperties   `json:"properties"`
	Datastreams []DatastreamParams `json:"datastreams,omitempty"`
}

// ObjectRep is the service's representation of a stored object.
type ObjectRep struct {
	PID         string                     `json:"pid"`
	Label       string                     `json:"label,omitempty"`
	State       ObjectState                `json:"state"`
	OwnerID     string                     `json:"ownerId,omitempty"`
	CreatedMS   ldtime.UnixMillisecondTime `json:"createdMs,omitempty"`
	ModifiedMS  ldtime.UnixMillisecondTime `json:"modifiedMs,omitempty"`
	Datastreams []DatastreamRep            `json:"datastreams,omitempty"`
}

// DatastreamRep is the service's representation of a stored datastream.
type DatastreamRep struct {
	ID           string                     `json:"id"`
	Label        string                     `json:"label,omitempty"`
	MIMEType     string                     `json:"mimeType"`
	State        ObjectState                `json:"state"`
	ControlGroup ControlGroup               `json:"controlGroup"`
	Versionable  bool                       `json:"versionable"`
	Versions     int                        `json:"versions,omitempty"`
	Size         int                        `json:"size"`
	CreatedMS    ldtime.UnixMillisecondTime `json:"createdMs,omitempty"`
	Content      string                     `json:"content,omitempty"`
}

// ObjectListRep is the response body for owner queries.
type ObjectListRep struct {
	PIDs []string `json:"pids"`
}
