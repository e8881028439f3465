package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"swingclub/server/internal/models"
)

var (
	// ErrNotFound is returned when the referenced inquiry does not exist.
	ErrNotFound = errors.New("inquiry not found")
	// ErrStateConflict is returned when a guarded write matched no document,
	// i.e. the inquiry's status changed under the caller.
	ErrStateConflict = errors.New("inquiry state changed concurrently")
)

// InquiryRepository is the durable-store boundary for inquiry threads. All
// counter mutations go through guarded atomic deltas ($inc-style), never a
// read-modify-write cycle, so concurrent senders cannot lose updates.
type InquiryRepository interface {
	// GetInquiry returns the inquiry, or ErrNotFound.
	GetInquiry(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error)

	// CreateWithFirstMessage persists a new inquiry together with its first
	// message as a single atomic unit.
	CreateWithFirstMessage(ctx context.Context, inq *models.Inquiry, msg *models.InquiryMessage) error

	// AppendMessage atomically inserts the message and applies the thread
	// summary delta: message_count += 1, unread_count.<recipient> += 1,
	// last_message/last_message_at/last_sender_id updated. The inquiry write
	// is guarded on status == active; ErrStateConflict if the thread was
	// closed in the meantime.
	AppendMessage(ctx context.Context, msg *models.InquiryMessage, recipient models.Role) error

	// UpdateStatus moves the inquiry from `from` to `to`, recording the
	// report reason and reporter when provided. Guarded on status == from;
	// ErrStateConflict on a concurrent transition.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.InquiryStatus, reason string, reporterID primitive.ObjectID) error

	// MarkRead atomically zeroes the role's unread counter, stamps the role's
	// last-read time, and flips every unread counterpart message to read.
	// The batch applies as one unit or not at all.
	MarkRead(ctx context.Context, id primitive.ObjectID, role models.Role, at time.Time) error

	// ListMessages returns the thread's messages in chronological order.
	ListMessages(ctx context.Context, inquiryID primitive.ObjectID) ([]models.InquiryMessage, error)

	// ListByUser returns every inquiry where the user is buyer or seller,
	// ordered by last_message_at descending.
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Inquiry, error)
}
