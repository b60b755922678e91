package session

// Stage is the step of the event pipeline the session is in.
type Stage int

const (
	StageIdle Stage = iota
	StageDecoding
	StageBookUpdate
	StageInventoryUpdate
	StageQuoting
	StageEmitted
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageDecoding:
		return "decoding"
	case StageBookUpdate:
		return "book_update"
	case StageInventoryUpdate:
		return "inventory_update"
	case StageQuoting:
		return "quoting"
	case StageEmitted:
		return "emitted"
	default:
		return "unknown"
	}
}

// Stats holds counters of processed events.
type Stats struct {
	// Processed counts every event handed to the session.
	Processed int64 `json:"processed"`
	// Quoted counts events that produced a quote.
	Quoted int64 `json:"quoted"`
	// Rejected counts events that failed, including malformed frames read from the feed.
	Rejected int64 `json:"rejected"`
	// Published counts quotes accepted by the publisher.
	Published int64 `json:"published"`
}
