package repotests

import (
	"context"
	"fmt"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/repodef"
)

// IndexEntry is the record that an indexing repository service writes to its external
// index backend for each object.
type IndexEntry struct {
	PID     string `json:"pid"`
	OwnerID string `json:"ownerId"`
	Label   string `json:"label,omitempty"`
}

// IndexStore is a verification hook into one external index backend. The contract tests
// use it to check that the service mirrors object metadata into the backend; they never
// write through it except to reset state between runs.
type IndexStore interface {
	// Name identifies the backend in test output.
	Name() string

	// GetEntry reads the index entry for a PID. The second return value is false if the
	// backend has no entry for it.
	GetEntry(ctx context.Context, pid string) (IndexEntry, bool, error)

	// Reset clears all index entries so a test run starts from a known state.
	Reset(ctx context.Context) error
}

// configureIndexStores creates an IndexStore for each index-* capability the service
// reported, using the addresses from the suite options.
func configureIndexStores(capabilities framework.Capabilities, options SuiteOptions) []IndexStore {
	var stores []IndexStore
	if capabilities.Has(repodef.CapabilityIndexRedis) {
		stores = append(stores, NewRedisIndexStore(options.RedisAddress))
	}
	if capabilities.Has(repodef.CapabilityIndexConsul) {
		store, err := NewConsulIndexStore(options.ConsulAddress)
		if err != nil {
			fmt.Printf("Warning: service has capability %q but the Consul client could not be created: %s\n",
				repodef.CapabilityIndexConsul, err)
		} else {
			stores = append(stores, store)
		}
	}
	if capabilities.Has(repodef.CapabilityIndexDynamoDB) {
		store, err := NewDynamoDBIndexStore(options.DynamoDBEndpoint)
		if err != nil {
			fmt.Printf("Warning: service has capability %q but the DynamoDB client could not be created: %s\n",
				repodef.CapabilityIndexDynamoDB, err)
		} else {
			stores = append(stores, store)
		}
	}
	return stores
}
