package data

import (
	"fmt"

	"github.com/openrepo/repo-test-harness/repodef"
)

// IngestFixture describes one repository object to be ingested during a test, as read
// from a fixture file.
type IngestFixture struct {
	// Name identifies the fixture in test output. Parameterized fixtures get the
	// parameter values appended.
	Name string `json:"name"`

	Object repodef.IngestObjectParams `json:"object"`
}

// LoadIngestFixtures reads every fixture file in data-files/ingest, expanding
// parameterized fixtures into one IngestFixture per permutation.
func LoadIngestFixtures() ([]IngestFixture, error) {
	sources, err := LoadAllDataFiles("ingest")
	if err != nil {
		return nil, err
	}
	var ret []IngestFixture
	for _, source := range sources {
		var fixture IngestFixture
		if err := source.ParseInto(&fixture); err != nil {
			return nil, err
		}
		if fixture.Name == "" {
			return nil, fmt.Errorf("fixture in %q has no name", source.FilePath)
		}
		fixture.Name += source.ParamsString()
		ret = append(ret, fixture)
	}
	return ret, nil
}
