package amqp

import (
	"encoding/json"
	"time"
)

// Event types carried on the export queue.
const (
	EventRecorded = "collection.recorded"
	EventDeleted  = "collection.deleted"
)

// CollectionEvent is a lightweight export message. It carries only the ids;
// the worker fetches the full record from storage.
type CollectionEvent struct {
	Type         string    `json:"type"`
	UserID       string    `json:"userId"`
	CollectionID string    `json:"collectionId"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewRecordedEvent(userID, collectionID string) *CollectionEvent {
	return &CollectionEvent{
		Type:         EventRecorded,
		UserID:       userID,
		CollectionID: collectionID,
		Timestamp:    time.Now(),
	}
}

func NewDeletedEvent(userID, collectionID string) *CollectionEvent {
	return &CollectionEvent{
		Type:         EventDeleted,
		UserID:       userID,
		CollectionID: collectionID,
		Timestamp:    time.Now(),
	}
}

func (e *CollectionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func CollectionEventFromJSON(data []byte) (*CollectionEvent, error) {
	var e CollectionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
