package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openrepo/repo-test-harness/framework"
)

// ServiceInfo is status information returned by the repository service from the initial
// status query.
type ServiceInfo struct {
	ServiceInfoBase

	// FullData is the entire response received from the service, which might contain
	// additional properties beyond ServiceInfoBase.
	FullData []byte
}

// ServiceInfoBase is the basic set of properties that every repository service under test
// must report from its status resource.
type ServiceInfoBase struct {
	// Name identifies the repository implementation, such as "fedora-repository".
	Name string `json:"name"`

	// Version is the version of the repository service, if it reports one.
	Version string `json:"version,omitempty"`

	// Capabilities is a list of strings representing optional features of the service.
	Capabilities framework.Capabilities `json:"capabilities"`
}

// Empty returns true if no status response has been received.
func (s ServiceInfo) Empty() bool {
	return s.FullData == nil
}

func queryServiceInfo(url string, timeout time.Duration, output io.Writer) (ServiceInfo, error) {
	fmt.Fprintf(output, "Connecting to repository service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := http.DefaultClient.Get(url)
		if err == nil {
			fmt.Fprintln(output)
			if resp.StatusCode != 200 {
				return ServiceInfo{}, fmt.Errorf("service returned status code %d from status query", resp.StatusCode)
			}
			if resp.Body == nil {
				return ServiceInfo{}, fmt.Errorf("service returned no metadata from status query")
			}
			respData, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return ServiceInfo{}, err
			}
			fmt.Fprintf(output, "Status query returned metadata: %s\n", string(respData))
			var base ServiceInfoBase
			if err := json.Unmarshal(respData, &base); err != nil {
				return ServiceInfo{}, fmt.Errorf("malformed status response from service: %s", string(respData))
			}
			return ServiceInfo{ServiceInfoBase: base, FullData: respData}, nil
		}
		if !time.Now().Before(deadline) {
			return ServiceInfo{}, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

func doRequest(method, url string, body []byte) ([]byte, http.Header, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewBuffer(body)
	}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	var respBody []byte
	if resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if body != nil {
			message = " (" + string(body) + ")"
		}
		err = fmt.Errorf("service returned error %d for %s %s%s", resp.StatusCode, method, url, message)
	}
	return respBody, resp.Header, err
}
