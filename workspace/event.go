package workspace

import "fmt"

// EventKind identifies what changed in a Store.
type EventKind int

const (
	// EventAdded is sent when a new document name is stored.
	EventAdded EventKind = iota
	// EventUpdated is sent when an existing document is replaced.
	EventUpdated
	// EventRemoved is sent when a document is removed.
	EventRemoved
	// EventSettings is sent when a workspace setting changes.
	EventSettings
)

// String returns a string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	case EventSettings:
		return "settings"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event describes one change to a Store.
type Event struct {
	Kind EventKind
	// Name is the document name for document events.
	Name string
	// Key is the setting key for EventSettings.
	Key string
}
