package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"swingclub/server/internal/config"
	"swingclub/server/internal/db"
	"swingclub/server/internal/errcode"
	"swingclub/server/internal/models"
	"swingclub/server/internal/notify"
	"swingclub/server/internal/repository"
)

// Actor is the authenticated caller of an inquiry operation, as resolved by
// the auth layer. A nil actor means the request carried no valid identity.
type Actor struct {
	ID   primitive.ObjectID
	Name string
}

// CatalogLookup is the slice of the listing service the inquiry flow needs:
// resolve a listing (or nil when it is not visible).
type CatalogLookup interface {
	FindListingByID(ctx context.Context, listingID primitive.ObjectID) (*models.Listing, error)
}

// IdentityLookup resolves a user id to an account (or nil when unknown).
type IdentityLookup interface {
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

// IInquiryService defines the public inquiry operations. Every expected
// failure comes back as a *errcode.Error; nothing here panics.
type IInquiryService interface {
	CreateInquiry(ctx context.Context, actor *Actor, itemID primitive.ObjectID, message string) (primitive.ObjectID, error)
	SendMessage(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID, msgType models.MessageType, content string) (primitive.ObjectID, error)
	GetInquiry(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID) (*models.Inquiry, error)
	GetInquiryMessages(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID) ([]models.InquiryMessage, error)
	GetUserInquiries(ctx context.Context, actor *Actor) ([]models.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID, newStatus models.InquiryStatus, reason string) error
	MarkInquiryAsRead(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID) error
}

// inquiryService orchestrates the repository, the access guard and the status
// state machine into the public operations. Counter correctness under
// concurrent senders comes from the repository's atomic deltas; this layer
// never composes a counter write from a stale read.
type inquiryService struct {
	repo     repository.InquiryRepository
	catalog  CatalogLookup
	users    IdentityLookup
	notifier notify.Dispatcher
	cfg      *config.Config
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(repo repository.InquiryRepository, catalog CatalogLookup, users IdentityLookup, notifier notify.Dispatcher, cfg *config.Config) IInquiryService {
	return &inquiryService{
		repo:     repo,
		catalog:  catalog,
		users:    users,
		notifier: notifier,
		cfg:      cfg,
	}
}

// CreateInquiry opens a new thread on a listing, persisting the inquiry and
// its first message as one atomic unit.
func (s *inquiryService) CreateInquiry(ctx context.Context, actor *Actor, itemID primitive.ObjectID, message string) (primitive.ObjectID, error) {
	if !authenticated(actor) {
		return primitive.NilObjectID, errcode.ErrAuthenticationRequired
	}

	listing, err := s.catalog.FindListingByID(ctx, itemID)
	if err != nil {
		return primitive.NilObjectID, errcode.ErrStorageFailure.Wrap(err)
	}
	if listing == nil {
		return primitive.NilObjectID, errcode.ErrNotFound
	}
	if actor.ID == listing.UserID {
		return primitive.NilObjectID, errcode.ErrSelfInquiry
	}

	content, err := s.validateContent(message)
	if err != nil {
		return primitive.NilObjectID, err
	}

	seller, err := s.users.FindByID(ctx, listing.UserID)
	if err != nil {
		return primitive.NilObjectID, errcode.ErrStorageFailure.Wrap(err)
	}
	if seller == nil {
		return primitive.NilObjectID, errcode.ErrNotFound
	}

	var inq *models.Inquiry
	operation := func() error {
		now := time.Now().UTC()
		inq = &models.Inquiry{
			ID:            primitive.NewObjectID(),
			ItemID:        listing.ID,
			ItemTitle:     listing.Title,
			ItemImage:     listing.Image,
			BuyerID:       actor.ID,
			BuyerName:     actor.Name,
			SellerID:      seller.ID,
			SellerName:    seller.Name,
			Status:        models.InquiryStatusActive,
			LastMessage:   content,
			LastMessageAt: now,
			LastSenderID:  actor.ID,
			MessageCount:  1,
			UnreadCount:   models.UnreadCount{Buyer: 0, Seller: 1},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		msg := &models.InquiryMessage{
			ID:         primitive.NewObjectID(),
			SenderID:   actor.ID,
			SenderName: actor.Name,
			SenderType: models.RoleBuyer,
			Type:       models.MessageTypeText,
			Content:    content,
			IsRead:     false,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return s.repo.CreateWithFirstMessage(ctx, inq, msg)
	}
	if err := db.Try(operation); err != nil {
		return primitive.NilObjectID, errcode.ErrStorageFailure.Wrap(fmt.Errorf("failed to create inquiry for item %s: %w", itemID.Hex(), err))
	}

	s.dispatch(ctx, seller.ID, notify.Event{
		Kind:      notify.EventNewInquiry,
		InquiryID: inq.ID.Hex(),
		ItemTitle: inq.ItemTitle,
		Snippet:   snippet(content),
	})

	return inq.ID, nil
}

// SendMessage appends one message to an active thread. The counterpart's
// unread counter moves by exactly one, atomically with the insert.
func (s *inquiryService) SendMessage(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID, msgType models.MessageType, content string) (primitive.ObjectID, error) {
	if !authenticated(actor) {
		return primitive.NilObjectID, errcode.ErrAuthenticationRequired
	}

	inq, role, err := s.loadGuarded(ctx, actor, inquiryID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !inq.Status.CanAcceptMessages() {
		return primitive.NilObjectID, errcode.ErrInvalidState
	}

	if msgType == "" {
		msgType = models.MessageTypeText
	}
	if !msgType.Valid() {
		return primitive.NilObjectID, errcode.ErrInvalidParam
	}
	trimmed, err := s.validateContent(content)
	if err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now().UTC()
	msg := &models.InquiryMessage{
		ID:         primitive.NewObjectID(),
		InquiryID:  inq.ID,
		SenderID:   actor.ID,
		SenderName: actor.Name,
		SenderType: role,
		Type:       msgType,
		Content:    trimmed,
		IsRead:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.AppendMessage(ctx, msg, role.Other()); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			// Thread was closed between our load and the write.
			return primitive.NilObjectID, errcode.ErrInvalidState
		}
		return primitive.NilObjectID, errcode.ErrStorageFailure.Wrap(err)
	}

	s.dispatch(ctx, counterpartID(inq, role), notify.Event{
		Kind:      notify.EventNewMessage,
		InquiryID: inq.ID.Hex(),
		ItemTitle: inq.ItemTitle,
		Snippet:   snippet(trimmed),
	})

	return msg.ID, nil
}

// GetInquiry returns the thread. Reads are role-guarded like every other
// operation and have no side effects.
func (s *inquiryService) GetInquiry(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID) (*models.Inquiry, error) {
	if !authenticated(actor) {
		return nil, errcode.ErrAuthenticationRequired
	}
	inq, _, err := s.loadGuarded(ctx, actor, inquiryID)
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// GetInquiryMessages returns the thread's messages in chronological order.
func (s *inquiryService) GetInquiryMessages(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID) ([]models.InquiryMessage, error) {
	if !authenticated(actor) {
		return nil, errcode.ErrAuthenticationRequired
	}
	inq, _, err := s.loadGuarded(ctx, actor, inquiryID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.ListMessages(ctx, inq.ID)
	if err != nil {
		return nil, errcode.ErrStorageFailure.Wrap(err)
	}
	return messages, nil
}

// GetUserInquiries returns every inquiry the actor is party to, ordered by
// last activity descending.
func (s *inquiryService) GetUserInquiries(ctx context.Context, actor *Actor) ([]models.Inquiry, error) {
	if !authenticated(actor) {
		return nil, errcode.ErrAuthenticationRequired
	}

	inquiries, err := s.repo.ListByUser(ctx, actor.ID, s.cfg.InquiryPageLimit)
	if err != nil {
		return nil, errcode.ErrStorageFailure.Wrap(err)
	}
	return inquiries, nil
}

// UpdateInquiryStatus moves the thread through the status state machine:
// active -> completed (seller only) or active -> reported (either party,
// with a reason). Terminal states allow no further transitions.
func (s *inquiryService) UpdateInquiryStatus(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID, newStatus models.InquiryStatus, reason string) error {
	if !authenticated(actor) {
		return errcode.ErrAuthenticationRequired
	}

	inq, role, err := s.loadGuarded(ctx, actor, inquiryID)
	if err != nil {
		return err
	}

	if !inq.Status.CanTransitionTo(newStatus, role) {
		return errcode.ErrInvalidStateTransition
	}
	reason = strings.TrimSpace(reason)
	if newStatus == models.InquiryStatusReported && reason == "" {
		return errcode.ErrEmptyContent
	}

	if err := s.repo.UpdateStatus(ctx, inq.ID, inq.Status, newStatus, reason, actor.ID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return errcode.ErrInvalidStateTransition
		}
		return errcode.ErrStorageFailure.Wrap(err)
	}

	s.dispatch(ctx, counterpartID(inq, role), notify.Event{
		Kind:      notify.EventStatusChange,
		InquiryID: inq.ID.Hex(),
		ItemTitle: inq.ItemTitle,
		Snippet:   string(newStatus),
	})

	return nil
}

// MarkInquiryAsRead zeroes the caller's own unread counter, stamps their
// last-read time and flips all unread counterpart messages, atomically.
func (s *inquiryService) MarkInquiryAsRead(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID) error {
	if !authenticated(actor) {
		return errcode.ErrAuthenticationRequired
	}

	inq, role, err := s.loadGuarded(ctx, actor, inquiryID)
	if err != nil {
		return err
	}

	if err := s.repo.MarkRead(ctx, inq.ID, role, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errcode.ErrNotFound
		}
		return errcode.ErrStorageFailure.Wrap(err)
	}
	return nil
}

// loadGuarded loads the inquiry and runs the access guard: RoleNone is denied
// before any further work, reads included.
func (s *inquiryService) loadGuarded(ctx context.Context, actor *Actor, inquiryID primitive.ObjectID) (*models.Inquiry, models.Role, error) {
	inq, err := s.repo.GetInquiry(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.RoleNone, errcode.ErrNotFound
		}
		return nil, models.RoleNone, errcode.ErrStorageFailure.Wrap(err)
	}

	role := inq.RoleOf(actor.ID)
	if role == models.RoleNone {
		return nil, models.RoleNone, errcode.ErrPermissionDenied
	}
	return inq, role, nil
}

// validateContent trims the message and enforces the length bounds.
func (s *inquiryService) validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", errcode.ErrEmptyContent
	}
	if utf8.RuneCountInString(trimmed) > s.cfg.MaxMessageLength {
		return "", errcode.ErrContentTooLong
	}
	return trimmed, nil
}

// dispatch fires a best-effort notification after the triggering write has
// committed. Failures are logged and never surface to the caller.
func (s *inquiryService) dispatch(ctx context.Context, recipientID primitive.ObjectID, ev notify.Event) {
	if err := s.notifier.Dispatch(ctx, recipientID, ev); err != nil {
		log.Printf("WARN: failed to dispatch %s notification for inquiry %s: %v", ev.Kind, ev.InquiryID, err)
	}
}

func authenticated(actor *Actor) bool {
	return actor != nil && actor.ID != primitive.NilObjectID
}

func counterpartID(inq *models.Inquiry, role models.Role) primitive.ObjectID {
	if role == models.RoleBuyer {
		return inq.SellerID
	}
	return inq.BuyerID
}

const snippetMaxRunes = 50

// snippet shortens message content for notification payloads.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetMaxRunes {
		return content
	}
	return string(runes[:snippetMaxRunes]) + "…"
}
