package timeline

import "github.com/desertthunder/stratos/internal/models"

// EventLookup maps frame keys to events.
type EventLookup struct {
	byKey      map[string]models.Event
	ordered    []models.Event
	duplicates int
}

// BuildEvents indexes events by key. On a repeated key the first event is kept and the rest are
// ignored; the number of ignored events is reported by [EventLookup.Duplicates].
func BuildEvents(events []models.Event) *EventLookup {
	l := &EventLookup{
		byKey:   make(map[string]models.Event, len(events)),
		ordered: make([]models.Event, 0, len(events)),
	}

	for _, ev := range events {
		if ev == nil {
			continue
		}
		if _, exists := l.byKey[ev.Key()]; exists {
			l.duplicates++
			continue
		}
		l.byKey[ev.Key()] = ev
		l.ordered = append(l.ordered, ev)
	}
	return l
}

// Lookup returns the event whose key equals key.
func (l *EventLookup) Lookup(key string) (models.Event, bool) {
	ev, ok := l.byKey[key]
	return ev, ok
}

// Len returns the number of retained events.
func (l *EventLookup) Len() int { return len(l.ordered) }

// All returns the retained events in the order they were built.
func (l *EventLookup) All() []models.Event {
	out := make([]models.Event, len(l.ordered))
	copy(out, l.ordered)
	return out
}

// Duplicates returns how many events were dropped because their key was already present.
func (l *EventLookup) Duplicates() int { return l.duplicates }
