package repotests

import (
	"fmt"

	m "github.com/openrepo/repo-test-harness/framework/matchers"
	"github.com/openrepo/repo-test-harness/repodef"
)

// DatastreamIDs extracts the datastream IDs from an object representation, so that
// collection matchers can be applied to them.
func DatastreamIDs() m.MatcherTransform {
	return m.Transform(
		"datastream IDs",
		func(value interface{}) interface{} {
			obj := value.(repodef.ObjectRep)
			ids := make([]string, 0, len(obj.Datastreams))
			for _, ds := range obj.Datastreams {
				ids = append(ids, ds.ID)
			}
			return ids
		},
	).EnsureInputValueType(repodef.ObjectRep{})
}

// HasDatastream matches an object representation that contains a datastream with the
// given ID.
func HasDatastream(id string) m.Matcher {
	return m.New(
		func(value interface{}) bool {
			for _, ds := range value.(repodef.ObjectRep).Datastreams {
				if ds.ID == id {
					return true
				}
			}
			return false
		},
		func(interface{}, m.DescribeValueFunc) string {
			return fmt.Sprintf("has datastream %q", id)
		},
	).EnsureType(repodef.ObjectRep{})
}

// DatastreamWithMIMEType matches a datastream representation with the given MIME type.
func DatastreamWithMIMEType(mimeType string) m.Matcher {
	return m.Transform(
		"MIME type",
		func(value interface{}) interface{} { return value.(repodef.DatastreamRep).MIMEType },
	).EnsureInputValueType(repodef.DatastreamRep{}).
		Should(m.Equal(mimeType))
}
