package testutil

import (
	"sync"

	"github.com/lombard-finance/lbtc-core/types"
)

// EventRecorder is an event sink that keeps everything published to it.
type EventRecorder struct {
	mu       sync.Mutex
	events   []types.Event
	failures map[string]int
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{failures: make(map[string]int)}
}

func (r *EventRecorder) Publish(ev types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *EventRecorder) RecordFailure(op string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op]++
}

func (r *EventRecorder) Events() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns the published events with the given name, in order.
func (r *EventRecorder) Named(name string) []types.Event {
	var out []types.Event
	for _, ev := range r.Events() {
		if ev.EventName() == name {
			out = append(out, ev)
		}
	}
	return out
}

func (r *EventRecorder) Failures(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures[op]
}

func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.failures = make(map[string]int)
}
