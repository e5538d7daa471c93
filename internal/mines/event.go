package mines

import "encoding/json"

type EventKind uint8

const (
	GameStarted EventKind = iota + 1
	GameFailed
	GameCompleted
	FlagAdded
	FlagRemoved
	CellOpened
)

var eventNames = map[EventKind]string{
	GameStarted:   "started",
	GameFailed:    "failed",
	GameCompleted: "completed",
	FlagAdded:     "flag_added",
	FlagRemoved:   "flag_removed",
	CellOpened:    "cell_opened",
}

// EventKind implements [fmt.Stringer]
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// EventKind implements [json.Marshaler]
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Event is published by a [Board]. Cell holds the arena index of the cell
// the event is about, or -1 for board level events.
type Event struct {
	Kind EventKind `json:"kind"`
	Cell int       `json:"cell"`
}

type Listener func(Event)
