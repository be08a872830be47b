package mockrepo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/gorilla/mux"

	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
)

const eventsPath = "/events"

// Service is an in-memory repository service. It implements the whole repodef REST
// protocol: status query, object ingest/get/purge, datastream operations, owner queries,
// and the SSE notification feed.
type Service struct {
	name         string
	version      string
	capabilities framework.Capabilities
	objects      map[string]*storedObject
	pidOrder     []string
	lastPID      int
	handler      http.Handler
	events       *EventsService
	logger       framework.Logger
	lock         sync.Mutex
}

type storedObject struct {
	rep         repodef.ObjectRep
	datastreams map[string]repodef.DatastreamRep
	dsOrder     []string
}

// NewService creates a Service advertising the given capabilities.
func NewService(capabilities framework.Capabilities, logger framework.Logger) *Service {
	if logger == nil {
		logger = framework.NullLogger()
	}
	s := &Service{
		name:         "mock-repository",
		version:      "0.0.0",
		capabilities: capabilities,
		objects:      make(map[string]*storedObject),
		events:       NewEventsService(logger),
		logger:       logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/", s.serveStatus).Methods("GET")
	router.HandleFunc("/objects", s.serveIngest).Methods("POST")
	router.HandleFunc("/objects", s.serveOwnerQuery).Methods("GET")
	router.HandleFunc("/objects/{pid}", s.serveGetObject).Methods("GET")
	router.HandleFunc("/objects/{pid}", s.servePurgeObject).Methods("DELETE")
	router.HandleFunc("/objects/{pid}/datastreams/{id}", s.servePutDatastream).Methods("PUT")
	router.HandleFunc("/objects/{pid}/datastreams/{id}", s.serveGetDatastream).Methods("GET")
	router.HandleFunc("/objects/{pid}/datastreams/{id}", s.servePurgeDatastream).Methods("DELETE")
	if capabilities.Has(repodef.CapabilityEventStream) {
		router.HandleFunc(eventsPath, s.events.ServeHTTP).Methods("GET")
	}
	s.handler = router

	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Events returns the SSE notification feed, for tests that publish or inspect events
// directly.
func (s *Service) Events() *EventsService {
	return s.events
}

func (s *Service) serveStatus(w http.ResponseWriter, r *http.Request) {
	rep := repodef.StatusRep{}
	rep.Name = s.name
	rep.Version = s.version
	rep.Capabilities = s.capabilities
	if s.capabilities.Has(repodef.CapabilityEventStream) {
		rep.EventsPath = eventsPath
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Service) serveIngest(w http.ResponseWriter, r *http.Request) {
	var params repodef.IngestObjectParams
	if !readJSONBody(w, r, &params) {
		return
	}

	s.lock.Lock()
	pid := params.Properties.PID
	if pid == "" {
		s.lastPID++
		pid = fmt.Sprintf("test:%d", s.lastPID)
	}
	if _, exists := s.objects[pid]; exists {
		s.lock.Unlock()
		writeError(w, http.StatusConflict, fmt.Sprintf("object %s already exists", pid))
		return
	}
	now := ldtime.UnixMillisNow()
	obj := &storedObject{
		rep: repodef.ObjectRep{
			PID:        pid,
			Label:      params.Properties.Label,
			State:      params.Properties.State.OrElse(repodef.ObjectStateActive),
			OwnerID:    params.Properties.OwnerID,
			CreatedMS:  now,
			ModifiedMS: now,
		},
		datastreams: make(map[string]repodef.DatastreamRep),
	}
	for _, ds := range params.Datastreams {
		obj.putDatastream(ds.WithDefaults(), now)
	}
	s.objects[pid] = obj
	s.pidOrder = append(s.pidOrder, pid)
	rep := obj.describe(false)
	s.lock.Unlock()

	s.logger.Printf("Ingested object %s with %d datastreams", pid, len(params.Datastreams))
	s.events.Publish(repodef.EventRep{Type: repodef.EventTypeIngest, PID: pid, TimestampMS: now})
	writeJSON(w, http.StatusCreated, rep)
}

func (s *Service) serveOwnerQuery(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("ownerId")
	if owner == "" {
		writeError(w, http.StatusBadRequest, "ownerId query parameter is required")
		return
	}
	s.lock.Lock()
	rep := repodef.ObjectListRep{PIDs: []string{}}
	for _, pid := range s.pidOrder {
		if s.objects[pid].rep.OwnerID == owner {
			rep.PIDs = append(rep.PIDs, pid)
		}
	}
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, rep)
}

func (s *Service) serveGetObject(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	obj := s.objects[mux.Vars(r)["pid"]]
	var rep repodef.ObjectRep
	if obj != nil {
		rep = obj.describe(false)
	}
	s.lock.Unlock()
	if obj == nil {
		writeError(w, http.StatusNotFound, "no such object")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Service) servePurgeObject(w http.ResponseWriter, r *http.Request) {
	pid := mux.Vars(r)["pid"]
	s.lock.Lock()
	_, exists := s.objects[pid]
	if exists {
		delete(s.objects, pid)
		for i, p := range s.pidOrder {
			if p == pid {
				s.pidOrder = append(s.pidOrder[:i], s.pidOrder[i+1:]...)
				break
			}
		}
	}
	s.lock.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "no such object")
		return
	}
	s.logger.Printf("Purged object %s", pid)
	s.events.Publish(repodef.EventRep{Type: repodef.EventTypePurgeObject, PID: pid,
		TimestampMS: ldtime.UnixMillisNow()})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) servePutDatastream(w http.ResponseWriter, r *http.Request) {
	pid, id := mux.Vars(r)["pid"], mux.Vars(r)["id"]
	var params repodef.DatastreamParams
	if !readJSONBody(w, r, &params) {
		return
	}
	if params.ID == "" {
		params.ID = id
	} else if params.ID != id {
		writeError(w, http.StatusBadRequest, "datastream ID in body does not match URL")
		return
	}

	s.lock.Lock()
	obj := s.objects[pid]
	var rep repodef.DatastreamRep
	if obj != nil {
		now := ldtime.UnixMillisNow()
		rep = obj.putDatastream(params.WithDefaults(), now)
		obj.rep.ModifiedMS = now
	}
	s.lock.Unlock()
	if obj == nil {
		writeError(w, http.StatusNotFound, "no such object")
		return
	}
	s.events.Publish(repodef.EventRep{Type: repodef.EventTypeModifyDatastream, PID: pid,
		DatastreamID: id, TimestampMS: ldtime.UnixMillisNow()})
	writeJSON(w, http.StatusOK, rep)
}

func (s *Service) serveGetDatastream(w http.ResponseWriter, r *http.Request) {
	pid, id := mux.Vars(r)["pid"], mux.Vars(r)["id"]
	s.lock.Lock()
	obj := s.objects[pid]
	var rep repodef.DatastreamRep
	found := false
	if obj != nil {
		rep, found = obj.datastreams[id]
	}
	s.lock.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "no such datastream")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Service) servePurgeDatastream(w http.ResponseWriter, r *http.Request) {
	pid, id := mux.Vars(r)["pid"], mux.Vars(r)["id"]
	s.lock.Lock()
	obj := s.objects[pid]
	found := false
	if obj != nil {
		if _, found = obj.datastreams[id]; found {
			delete(obj.datastreams, id)
			for i, dsID := range obj.dsOrder {
				if dsID == id {
					obj.dsOrder = append(obj.dsOrder[:i], obj.dsOrder[i+1:]...)
					break
				}
			}
			obj.rep.ModifiedMS = ldtime.UnixMillisNow()
		}
	}
	s.lock.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "no such datastream")
		return
	}
	s.events.Publish(repodef.EventRep{Type: repodef.EventTypePurgeDatastream, PID: pid,
		DatastreamID: id, TimestampMS: ldtime.UnixMillisNow()})
	w.WriteHeader(http.StatusNoContent)
}

// putDatastream stores or replaces a datastream. Replacing a versionable datastream
// increments its version count; replacing a non-versionable one overwrites in place.
// Must be called with the service lock held.
func (o *storedObject) putDatastream(params repodef.DatastreamParams, now ldtime.UnixMillisecondTime) repodef.DatastreamRep {
	rep := repodef.DatastreamRep{
		ID:           params.ID,
		Label:        params.Label,
		MIMEType:     params.MIMEType,
		State:        params.State.OrElse(repodef.DefaultDatastreamState),
		ControlGroup: params.ControlGroup.OrElse(repodef.DefaultDatastreamControlGroup),
		Versionable:  params.Versionable.OrElse(repodef.DefaultDatastreamVersionable),
		Versions:     1,
		Size:         len(params.Content),
		CreatedMS:    now,
		Content:      params.Content,
	}
	if prev, ok := o.datastreams[params.ID]; ok {
		rep.CreatedMS = prev.CreatedMS
		if prev.Versionable {
			rep.Versions = prev.Versions + 1
		} else {
			rep.Versions = prev.Versions
		}
	} else {
		o.dsOrder = append(o.dsOrder, params.ID)
	}
	o.datastreams[params.ID] = rep
	return rep
}

// describe returns the object representation with its datastream descriptors in
// insertion order. Content is omitted unless includeContent is set; the datastream
// resource serves content. Must be called with the service lock held.
func (o *storedObject) describe(includeContent bool) repodef.ObjectRep {
	rep := o.rep
	for _, id := range o.dsOrder {
		ds := o.datastreams[id]
		if !includeContent {
			ds.Content = ""
		}
		rep.Datastreams = append(rep.Datastreams, ds)
	}
	return rep
}

func readJSONBody(w http.ResponseWriter, r *http.Request, paramsOut interface{}) bool {
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return false
	}
	if err := json.Unmarshal(body, paramsOut); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	data, _ := json.Marshal(value)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
