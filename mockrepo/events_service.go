package mockrepo

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openrepo/repo-test-harness/framework"
	"github.com/openrepo/repo-test-harness/repodef"

	"github.com/launchdarkly/eventsource"
)

const notificationsChannel = "notifications"

type eventSourceDebugLogger struct {
	logger framework.Logger
}

func (l eventSourceDebugLogger) Println(args ...interface{}) {
	l.logger.Printf("%s", fmt.Sprintln(args...))
}

func (l eventSourceDebugLogger) Printf(format string, args ...interface{}) {
	l.logger.Printf(format, args...)
}

// EventsService is the SSE notification feed of the mock repository. Every successful
// ingest, datastream modification, and purge is published here as an event whose name is
// the event type and whose data is the JSON of a repodef.EventRep.
type EventsService struct {
	streams     *eventsource.Server
	debugLogger framework.Logger
}

type eventImpl struct {
	name string
	data interface{}
}

func NewEventsService(debugLogger framework.Logger) *EventsService {
	streams := eventsource.NewServer()
	streams.Logger = eventSourceDebugLogger{debugLogger}
	streams.Register(notificationsChannel, emptyRepository{})

	return &EventsService{
		streams:     streams,
		debugLogger: debugLogger,
	}
}

func (e *EventsService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.streams.Handler(notificationsChannel)(w, r)
	e.debugLogger.Printf("End of notification stream request")
}

// Publish sends an event to all current subscribers. Events are not replayed to
// subscribers that connect later.
func (e *EventsService) Publish(event repodef.EventRep) {
	impl := eventImpl{name: event.Type, data: event}
	e.debugLogger.Printf("sending %s event with data: %s", impl.Event(), impl.Data())
	e.streams.Publish([]string{notificationsChannel}, impl)
}

// Close shuts down all current subscriber connections.
func (e *EventsService) Close() {
	e.streams.Close()
}

// emptyRepository satisfies the eventsource server's replay interface; the notification
// feed has no history to replay.
type emptyRepository struct{}

func (emptyRepository) Replay(channel, id string) chan eventsource.Event {
	eventsCh := make(chan eventsource.Event)
	close(eventsCh)
	return eventsCh
}

func (e eventImpl) Event() string { return e.name }
func (e eventImpl) Id() string    { return "" } //nolint:stylecheck
func (e eventImpl) Data() string {
	bytes, _ := json.Marshal(e.data)
	return string(bytes)
}
