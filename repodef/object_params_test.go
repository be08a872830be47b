package repodef

import (
	"testing"

	o "github.com/openrepo/repo-test-harness/framework/opt"

	"github.com/stretchr/testify/assert"
)

func TestDatastreamParamsWithDefaults(t *testing.T) {
	filled := DatastreamParams{ID: "DC"}.WithDefaults()
	assert.Equal(t, "text/xml", filled.MIMEType)
	assert.Equal(t, o.Some(ObjectStateActive), filled.State)
	assert.Equal(t, o.Some(ControlGroupManaged), filled.ControlGroup)
	assert.Equal(t, o.Some(true), filled.Versionable)

	custom := DatastreamParams{
		ID:           "THUMB",
		MIMEType:     "image/png",
		State:        o.Some(ObjectStateInactive),
		ControlGroup: o.Some(ControlGroupExternal),
		Versionable:  o.Some(false),
	}.WithDefaults()
	assert.Equal(t, "image/png", custom.MIMEType)
	assert.Equal(t, o.Some(ObjectStateInactive), custom.State)
	assert.Equal(t, o.Some(ControlGroupExternal), custom.ControlGroup)
	assert.Equal(t, o.Some(false), custom.Versionable)
}
