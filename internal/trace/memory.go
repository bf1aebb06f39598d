package trace

import (
	"sync"

	"mindseye.ai/internal/field"
)

// Memory collects events in arrival order, for tests and the CLI summary.
type Memory struct {
	mu     sync.Mutex
	events []field.Event
}

func (m *Memory) Record(ev field.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

// Events returns a snapshot of everything recorded so far.
func (m *Memory) Events() []field.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]field.Event, len(m.events))
	copy(out, m.events)
	return out
}

// OfType returns the recorded events with the given type, in order.
func (m *Memory) OfType(typ string) []field.Event {
	var out []field.Event
	for _, ev := range m.Events() {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
