package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MATERIAL_INDEXED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by the ingestion pipeline.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
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

// Ingestion lifecycle event codes.
const (
	TypeMaterialReceived = "MATERIAL_RECEIVED"
	TypeMaterialIndexed  = "MATERIAL_INDEXED"
	TypeMaterialFailed   = "MATERIAL_FAILED"
)

// NewMaterialReceived is emitted when an upload has been parsed and queued for embedding.
func NewMaterialReceived(username, course, filename string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeMaterialReceived,
		Data: map[string]interface{}{
			"username":    username,
			"course":      course,
			"filename":    filename,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewMaterialIndexed is emitted when the background embedding of a material completes.
func NewMaterialIndexed(username, course, filename string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeMaterialIndexed,
		Data: map[string]interface{}{
			"username":    username,
			"course":      course,
			"filename":    filename,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewMaterialFailed is emitted when the background embedding of a material fails.
func NewMaterialFailed(username, course, filename string, reason string) Event {
	return BaseEvent{
		Type: TypeMaterialFailed,
		Data: map[string]interface{}{
			"username": username,
			"course":   course,
			"filename": filename,
			"reason":   reason,
		},
		OccurredAt: time.Now(),
	}
}
