// Package progress records the advancement of a single run as an ordered
// event log with a sticky progress value, and notifies listeners as each
// event is emitted.
package progress

import (
	"sync"
	"time"
)

type Status string

const (
	Started    Status = "started"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
	Error      Status = "error"
)

// Event is one progress record. Progress is always in [0,100].
type Event struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	Progress  int       `json:"progress"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// Listener receives events synchronously, in emission order. A listener must
// not block; it may read the reporter but must not emit on it.
type Listener func(Event)

// Reporter is owned by one run. Emitting from several goroutines is safe but
// the resulting order is then the order in which emissions acquired the lock.
type Reporter struct {
	emit sync.Mutex // serializes append + notify

	mu        sync.RWMutex
	events    []Event
	current   int
	listeners map[int]Listener
	order     []int
	nextID    int

	now func() time.Time
}

func New() *Reporter {
	return &Reporter{
		listeners: map[int]Listener{},
		now:       time.Now,
	}
}

// Subscribe registers l for events emitted from now on. Past events are not
// replayed. The returned func removes the listener.
func (r *Reporter) Subscribe(l Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	r.order = append(r.order, id)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
		for i, v := range r.order {
			if v == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
}

// Start zeroes progress and emits a started event.
func (r *Reporter) Start(message string) {
	r.add(Started, message, func(int) int { return 0 }, "")
}

// Update emits an in-progress event at the current progress value.
func (r *Reporter) Update(message string) {
	r.add(InProgress, message, func(cur int) int { return cur }, "")
}

// UpdateTo records progress and emits an in-progress event.
func (r *Reporter) UpdateTo(message string, progress int) {
	r.add(InProgress, message, func(int) int { return clamp(progress) }, "")
}

// Complete forces progress to 100.
func (r *Reporter) Complete(message string) {
	r.add(Completed, message, func(int) int { return 100 }, "")
}

// Error emits an error event at the current progress value.
func (r *Reporter) Error(message, detail string) {
	r.add(Error, message, func(cur int) int { return cur }, detail)
}

// Reset clears the log and zeroes progress. Only call between runs.
func (r *Reporter) Reset() {
	r.emit.Lock()
	defer r.emit.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.current = 0
}

func (r *Reporter) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Reporter) Latest() (Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}

func (r *Reporter) Progress() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Reporter) add(status Status, message string, progress func(int) int, detail string) {
	r.emit.Lock()
	defer r.emit.Unlock()

	r.mu.Lock()
	r.current = progress(r.current)
	ev := Event{
		Status:    status,
		Message:   message,
		Progress:  r.current,
		Timestamp: r.now(),
		Detail:    detail,
	}
	r.events = append(r.events, ev)
	listeners := make([]Listener, 0, len(r.order))
	for _, id := range r.order {
		listeners = append(listeners, r.listeners[id])
	}
	r.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

func clamp(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
