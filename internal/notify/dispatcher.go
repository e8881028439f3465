package notify

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventKind identifies what happened on an inquiry thread.
type EventKind string

const (
	EventNewInquiry   EventKind = "new_inquiry"
	EventNewMessage   EventKind = "new_message"
	EventStatusChange EventKind = "status_change"
)

// Event is the payload handed to the counterpart's notification.
type Event struct {
	Kind      EventKind `json:"kind"`
	InquiryID string    `json:"inquiry_id"`
	ItemTitle string    `json:"item_title"`
	Snippet   string    `json:"snippet,omitempty"`
}

// Dispatcher informs a user of new inquiry activity. Dispatch is fire and
// forget from the caller's point of view: implementations must not block on
// delivery, and callers swallow (log) any error it does return.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipientID primitive.ObjectID, ev Event) error
}

// LogDispatcher writes notifications to the process log. Used in development
// and as the fallback when no Redis broker is configured.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, recipientID primitive.ObjectID, ev Event) error {
	log.Printf("notify (logged): recipient=%s kind=%s inquiry=%s", recipientID.Hex(), ev.Kind, ev.InquiryID)
	return nil
}
