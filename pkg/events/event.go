package events

import "time"

// Import lifecycle event codes.
const (
	ImportQueued    = "IMPORT_QUEUED"
	ImportStarted   = "IMPORT_STARTED"
	ImportCompleted = "IMPORT_COMPLETED"
	ImportFailed    = "IMPORT_FAILED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "IMPORT_QUEUED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation the services publish.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewImportEvent(eventType, jobId, accountName string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"job_id":       jobId,
			"account_name": accountName,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
