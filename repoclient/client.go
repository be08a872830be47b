package repoclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/repodef"
)

// ErrNotFound is returned by lookup operations when the service responds with a 404.
// Presence/absence assertions rely on being able to distinguish this from other errors.
var ErrNotFound = errors.New("not found")

// Client performs repository operations against a service that implements the repodef
// protocol.
type Client struct {
	baseURL    string
	principal  string
	httpClient *http.Client
	logger     framework.Logger
}

// New creates a Client for the service at baseURL. The principal is the owner identity
// that the client stamps onto ingested objects when their properties do not specify one.
func New(baseURL string, principal string, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		principal:  principal,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// Principal returns the owner identity this client ingests objects under.
func (c *Client) Principal() string {
	return c.principal
}

// IngestObject creates an object with its initial datastreams. Datastream descriptors
// have their unset optional fields defaulted first, and an empty OwnerID is replaced by
// the client's principal.
func (c *Client) IngestObject(params repodef.IngestObjectParams) (repodef.ObjectRep, error) {
	if params.Properties.OwnerID == "" {
		params.Properties.OwnerID = c.principal
	}
	for i, ds := range params.Datastreams {
		params.Datastreams[i] = ds.WithDefaults()
	}
	var rep repodef.ObjectRep
	err := c.doJSON("POST", c.baseURL+"/objects", params, &rep)
	return rep, err
}

// GetObject retrieves an object and its datastream descriptors (without content).
func (c *Client) GetObject(pid string) (repodef.ObjectRep, error) {
	var rep repodef.ObjectRep
	err := c.doJSON("GET", c.objectURL(pid), nil, &rep)
	return rep, err
}

// PurgeObject deletes an object and all of its datastreams.
func (c *Client) PurgeObject(pid string) error {
	return c.doJSON("DELETE", c.objectURL(pid), nil, nil)
}

// AddDatastream attaches a datastream to an existing object, defaulting any unset
// optional fields of the descriptor.
func (c *Client) AddDatastream(pid string, ds repodef.DatastreamParams) (repodef.DatastreamRep, error) {
	ds = ds.WithDefaults()
	var rep repodef.DatastreamRep
	err := c.doJSON("PUT", c.datastreamURL(pid, ds.ID), ds, &rep)
	return rep, err
}

// GetDatastream retrieves a datastream descriptor including its content.
func (c *Client) GetDatastream(pid, id string) (repodef.DatastreamRep, error) {
	var rep repodef.DatastreamRep
	err := c.doJSON("GET", c.datastreamURL(pid, id), nil, &rep)
	return rep, err
}

// PurgeDatastream deletes a single datastream from an object.
func (c *Client) PurgeDatastream(pid, id string) error {
	return c.doJSON("DELETE", c.datastreamURL(pid, id), nil, nil)
}

// ListObjectsByOwner returns the PIDs of all objects owned by the given principal.
func (c *Client) ListObjectsByOwner(owner string) ([]string, error) {
	var rep repodef.ObjectListRep
	err := c.doJSON("GET", c.baseURL+"/objects?ownerId="+url.QueryEscape(owner), nil, &rep)
	return rep.PIDs, err
}

func (c *Client) objectURL(pid string) string {
	return c.baseURL + "/objects/" + url.PathEscape(pid)
}

func (c *Client) datastreamURL(pid, id string) string {
	return c.objectURL(pid) + "/datastreams/" + url.PathEscape(id)
}

func (c *Client) doJSON(method, requestURL string, body interface{}, responseOut interface{}) error {
	var bodyReader io.Reader
	var bodyData []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyData = data
		bodyReader = bytes.NewBuffer(data)
	}
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		return err
	}
	if bodyData != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	c.logger.Printf("%s %s %s", method, requestURL, string(bodyData))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	var respBody []byte
	if resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, requestURL, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if len(respBody) != 0 {
			message = ": " + string(respBody)
		}
		return fmt.Errorf("service returned error %d for %s %s%s", resp.StatusCode, method, requestURL, message)
	}
	if responseOut != nil {
		if len(respBody) == 0 {
			return errors.New("expected a response body but got none")
		}
		if err := json.Unmarshal(respBody, responseOut); err != nil {
			return err
		}
		c.logger.Printf("Response: %s", string(respBody))
	}
	return nil
}
