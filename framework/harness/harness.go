package harness

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openrepo/repo-test-harness/framework"
)

const httpListenerTimeout = time.Second * 10

// TestHarness is the main component that manages communication with the repository
// service under test.
//
// It always communicates with a single service, which it verifies is alive on startup by
// querying the status resource. It can then create any number of callback endpoints for
// the service to interact with (NewMockEndpoint), such as event notification receivers.
//
// It contains no domain-specific test logic, but only provides a general mechanism for
// test suites to build on.
type TestHarness struct {
	serviceBaseURL string
	serviceInfo    ServiceInfo
	mockEndpoints  *mockEndpointsManager
	logger         framework.Logger
}

// NewTestHarness creates a TestHarness instance, and verifies that the repository service
// is responding by querying its status resource. It also starts an HTTP listener on the
// specified port to receive callback requests.
func NewTestHarness(
	serviceBaseURL string,
	testHarnessExternalHostname string,
	testHarnessPort int,
	statusQueryTimeout time.Duration,
	debugLogger framework.Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}

	externalBaseURL := fmt.Sprintf("http://%s:%d", testHarnessExternalHostname, testHarnessPort)

	h := &TestHarness{
		serviceBaseURL: serviceBaseURL,
		mockEndpoints:  newMockEndpointsManager(externalBaseURL, debugLogger),
		logger:         debugLogger,
	}

	serviceInfo, err := queryServiceInfo(serviceBaseURL, statusQueryTimeout, startupOutput)
	if err != nil {
		return nil, err
	}
	h.serviceInfo = serviceInfo

	if err := startServer(testHarnessPort, http.HandlerFunc(h.serveHTTP)); err != nil {
		return nil, err
	}

	return h, nil
}

// ServiceInfo returns the initial status information received from the repository service.
func (h *TestHarness) ServiceInfo() ServiceInfo {
	return h.serviceInfo
}

// ServiceBaseURL returns the base URL that was used to contact the repository service.
func (h *TestHarness) ServiceBaseURL() string {
	return h.serviceBaseURL
}

// StopService tells the repository service that it should exit.
func (h *TestHarness) StopService() error {
	req, _ := http.NewRequest("DELETE", h.serviceBaseURL, nil)
	resp, err := http.DefaultClient.Do(req)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err == nil && resp.StatusCode >= 300 {
		return fmt.Errorf("service returned HTTP %d", resp.StatusCode)
	}
	// It's normal for the request to return an I/O error if the service immediately quit
	// before sending a response
	return nil
}

// NewMockEndpoint adds a new endpoint that can receive requests.
//
// The specified handler will be called for all incoming requests to the endpoint's
// base URL or any subpath of it. For instance, if the generated base URL (as reported
// by MockEndpoint.BaseURL()) is http://localhost:8111/endpoints/3, then it can also
// receive requests to http://localhost:8111/endpoints/3/some/subpath.
//
// When the handler is called, the test harness rewrites the request URL first so that
// the handler sees only the subpath. It also attaches a Context to the request whose
// Done channel will be closed if Close is called on the endpoint.
func (h *TestHarness) NewMockEndpoint(
	handler http.Handler,
	logger framework.Logger,
	options ...MockEndpointOption,
) *MockEndpoint {
	if logger == nil {
		logger = h.logger
	}
	return h.mockEndpoints.newMockEndpoint(handler, logger, options...)
}

func (h *TestHarness) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == "HEAD" {
		w.WriteHeader(200) // we use this to test whether our own listener is active yet
		return
	}
	h.mockEndpoints.serveHTTP(w, r)
}

func startServer(port int, handler http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			panic(err)
		}
	}()

	// Wait till the server is definitely listening for requests before we run any tests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at %s", server.Addr)
		case <-ticker.C:
			_, _, err := doRequest("HEAD", fmt.Sprintf("http://localhost:%d", port), nil)
			if err == nil {
				return nil
			}
		}
	}
}
