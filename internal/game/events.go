// internal/game/events.go
//
// Outcome notifications for render and completion collaborators.
// Defines:
//   - Notifier: the callback surface the Controller drives.
//   - Notifiers: fan-out to several notifiers.
//   - EventLog: a sequenced, pollable Notifier for clients that cannot be
//     pushed to (HTTP polling, tests).
//
// Ordering guaranteed by the Controller: a position's reveal is notified
// before its pair is evaluated; a mismatched pair's hide is notified only
// after the visible delay.

package game

import (
	"sync"
	"time"
)

// Notifier receives outcome notifications. Calls are made while the
// Controller holds its lock, so implementations must not call back into it.
type Notifier interface {
	Revealed(positions []int)
	Hidden(positions []int)
	Completed(elapsed Elapsed)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Revealed([]int)    {}
func (NopNotifier) Hidden([]int)      {}
func (NopNotifier) Completed(Elapsed) {}

// Notifiers fans each notification out in order.
type Notifiers []Notifier

func (ns Notifiers) Revealed(p []int) {
	for _, n := range ns {
		n.Revealed(p)
	}
}

func (ns Notifiers) Hidden(p []int) {
	for _, n := range ns {
		n.Hidden(p)
	}
}

func (ns Notifiers) Completed(e Elapsed) {
	for _, n := range ns {
		n.Completed(e)
	}
}

// EventKind names a notification in the event log.
type EventKind string

const (
	EventReveal   EventKind = "reveal"
	EventHide     EventKind = "hide"
	EventComplete EventKind = "complete"
)

// Event is one recorded notification.
type Event struct {
	Seq       int       `json:"seq"`
	Kind      EventKind `json:"kind"`
	Positions []int     `json:"positions,omitempty"`
	Elapsed   *Elapsed  `json:"elapsed,omitempty"`
	Message   string    `json:"message,omitempty"`
	At        time.Time `json:"at"`
}

// EventLog records notifications with increasing sequence numbers.
type EventLog struct {
	mu     sync.RWMutex
	now    func() time.Time
	events []Event
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog { return &EventLog{now: time.Now} }

func (l *EventLog) Revealed(p []int) { l.append(Event{Kind: EventReveal, Positions: clonePositions(p)}) }

func (l *EventLog) Hidden(p []int) { l.append(Event{Kind: EventHide, Positions: clonePositions(p)}) }

func (l *EventLog) Completed(e Elapsed) {
	l.append(Event{Kind: EventComplete, Elapsed: &e, Message: e.Message()})
}

// Since returns the events with Seq > after, oldest first.
func (l *EventLog) Since(after int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if after < 0 {
		after = 0
	}
	if after >= len(l.events) {
		return []Event{}
	}
	out := make([]Event, len(l.events)-after)
	copy(out, l.events[after:])
	return out
}

// Last returns the highest sequence number recorded (0 when empty).
func (l *EventLog) Last() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

func (l *EventLog) append(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.Seq = len(l.events) + 1
	e.At = l.now()
	l.events = append(l.events, e)
}

func clonePositions(p []int) []int {
	out := make([]int, len(p))
	copy(out, p)
	return out
}
