package gapsweep

import (
	"errors"
	"fmt"

	"github.com/akmonengine/gapsweep/edge"
	"github.com/akmonengine/gapsweep/face"
	"github.com/akmonengine/gapsweep/fixed"
)

const (
	GAP_FOUND EventType = iota
	DEGENERATE_TRIANGLE
	TOPOLOGY_ANOMALY
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Anomaly is a broken geometric assumption met during a sweep. The pair it belongs to
// is skipped for that angle, the sweep goes on.
type Anomaly struct {
	Angle fixed.Angle
	Pair  int
	// Err is a *face.DegenerateTriangleError or an *edge.TopologyError
	Err error
}

func (a Anomaly) Error() string {
	return fmt.Sprintf("angle %d, pair %d: %v", a.Angle, a.Pair, a.Err)
}

func (a Anomaly) Unwrap() error {
	return a.Err
}

func (a Anomaly) Type() EventType {
	var degenerate *face.DegenerateTriangleError
	if errors.As(a.Err, &degenerate) {
		return DEGENERATE_TRIANGLE
	}
	return TOPOLOGY_ANOMALY
}

// Degenerate reports whether the anomaly comes from a collinear vertex triple
func (a Anomaly) Degenerate() bool {
	return a.Type() == DEGENERATE_TRIANGLE
}

// Topology returns the pairing error, if that is what the anomaly is
func (a Anomaly) Topology() (*edge.TopologyError, bool) {
	var topology *edge.TopologyError
	ok := errors.As(a.Err, &topology)
	return topology, ok
}

type GapFoundEvent struct {
	Angle  fixed.Angle
	Points []GapPoint
}

func (e GapFoundEvent) Type() EventType { return GAP_FOUND }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 256),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordResult buffers the events of a merged sweep, gaps first then anomalies, both by angle
func (e *Events) recordResult(result *Result) {
	for el := result.Gaps.Front(); el != nil; el = el.Next() {
		e.buffer = append(e.buffer, GapFoundEvent{Angle: el.Key, Points: el.Value})
	}
	for _, anomaly := range result.Anomalies {
		e.buffer = append(e.buffer, anomaly)
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
