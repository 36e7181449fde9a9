package gapsweep

import (
	"testing"

	"github.com/akmonengine/gapsweep/edge"
	"github.com/akmonengine/gapsweep/face"
	"github.com/akmonengine/gapsweep/fixed"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}

func TestAnomalyType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected EventType
	}{
		{"degenerate", &face.DegenerateTriangleError{}, DEGENERATE_TRIANGLE},
		{"topology", &edge.TopologyError{Reason: edge.NoFloor}, TOPOLOGY_ANOMALY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anomaly := Anomaly{Angle: 32, Pair: 1, Err: tt.err}
			if anomaly.Type() != tt.expected {
				t.Errorf("Type() = %v, want %v", anomaly.Type(), tt.expected)
			}
		})
	}
}

func TestEventsSubscribeAndFlush(t *testing.T) {
	events := NewEvents()
	gaps := &eventCapture{}
	topology := &eventCapture{}
	events.Subscribe(GAP_FOUND, gaps.capture)
	events.Subscribe(TOPOLOGY_ANOMALY, topology.capture)

	result := newResult()
	result.add(AngleResult{Angle: 0, Gaps: []GapPoint{{X: 1, Z: 1}}})
	result.add(AngleResult{Angle: 16, Anomalies: []Anomaly{{Angle: 16, Err: &edge.TopologyError{Reason: edge.ZMismatch}}}})
	result.add(AngleResult{Angle: 32, Anomalies: []Anomaly{{Angle: 32, Err: &face.DegenerateTriangleError{}}}})

	events.recordResult(result)
	events.flush()

	if gaps.count() != 1 || !gaps.hasEventType(GAP_FOUND) {
		t.Errorf("gap events = %d, want 1", gaps.count())
	}
	if topology.count() != 1 || !topology.hasEventType(TOPOLOGY_ANOMALY) {
		t.Errorf("topology events = %d, want 1", topology.count())
	}
	if len(events.buffer) != 0 {
		t.Errorf("buffer not cleared after flush: %d events", len(events.buffer))
	}

	// A second flush sends nothing
	events.flush()
	if gaps.count() != 1 || topology.count() != 1 {
		t.Errorf("events sent twice")
	}
}

func TestEventsZeroValueSubscribe(t *testing.T) {
	var events Events
	capture := &eventCapture{}
	events.Subscribe(GAP_FOUND, capture.capture)

	result := newResult()
	result.add(AngleResult{Angle: 48, Gaps: []GapPoint{{X: 2, Z: 3}}})
	events.recordResult(result)
	events.flush()

	if capture.count() != 1 {
		t.Fatalf("events = %d, want 1", capture.count())
	}
	if e := capture.events[0].(GapFoundEvent); e.Angle != 48 {
		t.Errorf("Angle = %d, want 48", e.Angle)
	}
}

func TestSweepEmitsOrderedEvents(t *testing.T) {
	s := &Sweeper{Workers: 4, Events: NewEvents()}
	anomalies := &eventCapture{}
	gaps := &eventCapture{}
	s.Events.Subscribe(TOPOLOGY_ANOMALY, anomalies.capture)
	s.Events.Subscribe(DEGENERATE_TRIANGLE, anomalies.capture)
	s.Events.Subscribe(GAP_FOUND, gaps.capture)

	result, err := s.Sweep(createStepConfig())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if anomalies.count() != len(result.Anomalies) {
		t.Errorf("anomaly events = %d, want %d", anomalies.count(), len(result.Anomalies))
	}
	if gaps.count() != result.Gaps.Len() {
		t.Errorf("gap events = %d, want %d", gaps.count(), result.Gaps.Len())
	}

	var previous fixed.Angle
	for i, e := range anomalies.events {
		angle := e.(Anomaly).Angle
		if i > 0 && angle < previous {
			t.Fatalf("anomaly events out of order: %d after %d", angle, previous)
		}
		previous = angle
	}
	if gaps.count() > 0 && gaps.events[0].(GapFoundEvent).Angle != 0 {
		t.Errorf("first gap event angle = %d, want 0", gaps.events[0].(GapFoundEvent).Angle)
	}
}
