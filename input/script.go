package input

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/puppet/gesture"
)

// ScriptRow is one line of a pointer script CSV.
type ScriptRow struct {
	T       float64 `csv:"t"`
	Event   string  `csv:"event"` // "move" or "activate"
	X       float32 `csv:"x"`
	Y       float32 `csv:"y"`
	Pointer string  `csv:"pointer"` // "mouse" or "touch"
}

// ScriptSource replays recorded pointer events by timestamp.
type ScriptSource struct {
	events []Event
	next   int
}

// LoadScript reads a pointer script from a CSV file.
func LoadScript(path string) (*ScriptSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return ReadScript(f)
}

// ReadScript parses a pointer script.
func ReadScript(r io.Reader) (*ScriptSource, error) {
	var rows []ScriptRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	events := make([]Event, 0, len(rows))
	for i, row := range rows {
		ev, err := row.event()
		if err != nil {
			return nil, fmt.Errorf("script row %d: %w", i+1, err)
		}
		events = append(events, ev)
	}
	return NewScriptSource(events), nil
}

// NewScriptSource replays events, ordered by time with ties kept in input order.
func NewScriptSource(events []Event) *ScriptSource {
	sorted := append([]Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &ScriptSource{events: sorted}
}

func (row ScriptRow) event() (Event, error) {
	ev := Event{X: row.X, Y: row.Y, At: row.T}

	switch strings.ToLower(strings.TrimSpace(row.Event)) {
	case "move":
		ev.Kind = PointerMoved
	case "activate", "click", "tap":
		ev.Kind = Activated
	default:
		return Event{}, fmt.Errorf("unknown event %q", row.Event)
	}

	switch strings.ToLower(strings.TrimSpace(row.Pointer)) {
	case "", "mouse":
		ev.Pointer = gesture.PointerMouse
	case "touch":
		ev.Pointer = gesture.PointerTouch
	default:
		return Event{}, fmt.Errorf("unknown pointer %q", row.Pointer)
	}
	return ev, nil
}

// Poll returns every not yet delivered event with At <= now.
func (s *ScriptSource) Poll(now float64) []Event {
	start := s.next
	for s.next < len(s.events) && s.events[s.next].At <= now {
		s.next++
	}
	return s.events[start:s.next]
}

// Done reports whether every event has been delivered.
func (s *ScriptSource) Done() bool {
	return s.next >= len(s.events)
}

// End returns the timestamp of the last event.
func (s *ScriptSource) End() float64 {
	if len(s.events) == 0 {
		return 0
	}
	return s.events[len(s.events)-1].At
}
