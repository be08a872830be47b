package repotests

import (
	"context"
	"encoding/json"
	"fmt"

	consul "github.com/hashicorp/consul/api"
)

const consulIndexKeyPrefix = "repo-index/"

// ConsulIndexStore verifies index entries in the Consul KV store. The service is
// expected to store each entry as JSON at "repo-index/<pid>".
type ConsulIndexStore struct {
	consul *consul.Client
}

func NewConsulIndexStore(address string) (*ConsulIndexStore, error) {
	config := consul.DefaultConfig()
	if address != "" {
		config.Address = address
	}
	client, err := consul.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &ConsulIndexStore{consul: client}, nil
}

func (c *ConsulIndexStore) Name() string {
	return "consul"
}

func (c *ConsulIndexStore) GetEntry(ctx context.Context, pid string) (IndexEntry, bool, error) {
	pair, _, err := c.consul.KV().Get(consulIndexKeyPrefix+pid, (&consul.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return IndexEntry{}, false, err
	}
	if pair == nil {
		return IndexEntry{}, false, nil
	}
	var entry IndexEntry
	if err := json.Unmarshal(pair.Value, &entry); err != nil {
		return IndexEntry{}, false, fmt.Errorf("malformed index entry for %s: %w", pid, err)
	}
	return entry, true, nil
}

func (c *ConsulIndexStore) Reset(ctx context.Context) error {
	_, err := c.consul.KV().DeleteTree(consulIndexKeyPrefix, (&consul.WriteOptions{}).WithContext(ctx))
	return err
}
