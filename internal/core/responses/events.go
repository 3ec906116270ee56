package responses

// EventKind is the closed set of platform change notifications the
// reconciler understands. New platform event names parse to EventUnknown
// and are acknowledged without mutation.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventRecordUpdated
	EventRecordDeleted
)

// ParseEventKind maps a wire event tag onto the closed kind set.
func ParseEventKind(event string) EventKind {
	switch event {
	case "record.updated":
		return EventRecordUpdated
	case "record.deleted":
		return EventRecordDeleted
	default:
		return EventUnknown
	}
}

func (k EventKind) String() string {
	switch k {
	case EventRecordUpdated:
		return "record.updated"
	case EventRecordDeleted:
		return "record.deleted"
	default:
		return "unknown"
	}
}

// Notification is a change notification pushed by the platform. All four
// fields are required; anything less is a malformed payload.
type Notification struct {
	Event    string `json:"event"`
	Base     string `json:"base"`
	Table    string `json:"table"`
	RecordID string `json:"-"`
}
