package provisioning

import (
	"fmt"
	"maps"
	"sync"
)

// RecordingObserver is an Observer that keeps every message and event in
// memory. It is safe for concurrent use and is meant for tests.
type RecordingObserver struct {
	mu       *sync.Mutex
	events   *[]Event
	messages *[]string
	fields   map[string]string
}

// NewRecordingObserver creates an empty RecordingObserver.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{
		mu:       &sync.Mutex{},
		events:   &[]Event{},
		messages: &[]string{},
		fields:   map[string]string{},
	}
}

// Printf implements Logger.
func (r *RecordingObserver) Printf(format string, v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.messages = append(*r.messages, fmt.Sprintf(format, v...))
}

// Event implements Observer. Context fields are merged into the event.
func (r *RecordingObserver) Event(event Event) {
	if len(r.fields) > 0 {
		merged := maps.Clone(r.fields)
		maps.Copy(merged, event.Fields)
		event.Fields = merged
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.events = append(*r.events, event)
}

// Progress implements Observer.
func (r *RecordingObserver) Progress(phase string, current, total int) {
	r.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: "progress",
		Fields: map[string]string{
			"current": fmt.Sprint(current),
			"total":   fmt.Sprint(total),
		},
	})
}

// WithFields implements Observer. The derived observer shares storage with r.
func (r *RecordingObserver) WithFields(fields map[string]string) Observer {
	merged := maps.Clone(r.fields)
	maps.Copy(merged, fields)
	return &RecordingObserver{
		mu:       r.mu,
		events:   r.events,
		messages: r.messages,
		fields:   merged,
	}
}

// Events returns a copy of the recorded events.
func (r *RecordingObserver) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), *r.events...)
}

// EventsOf returns the recorded events of one type.
func (r *RecordingObserver) EventsOf(t EventType) []Event {
	var result []Event
	for _, e := range r.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Messages returns a copy of the recorded Printf messages.
func (r *RecordingObserver) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), *r.messages...)
}
