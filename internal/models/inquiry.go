package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InquiryStatus is the lifecycle state of an inquiry thread.
type InquiryStatus string

const (
	InquiryStatusActive    InquiryStatus = "active"
	InquiryStatusCompleted InquiryStatus = "completed"
	InquiryStatusReported  InquiryStatus = "reported"
)

// Valid reports whether s is one of the known statuses.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusActive, InquiryStatusCompleted, InquiryStatusReported:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s InquiryStatus) Terminal() bool {
	return s == InquiryStatusCompleted || s == InquiryStatusReported
}

// CanAcceptMessages reports whether new messages may be appended to a thread
// in this status.
func (s InquiryStatus) CanAcceptMessages() bool {
	return s == InquiryStatusActive
}

// CanTransitionTo encodes the status transition table. Every transition must
// originate from active; completion is the seller's call, reporting is open
// to either party.
func (s InquiryStatus) CanTransitionTo(next InquiryStatus, role Role) bool {
	if s != InquiryStatusActive {
		return false
	}
	switch next {
	case InquiryStatusCompleted:
		return role == RoleSeller
	case InquiryStatusReported:
		return role == RoleBuyer || role == RoleSeller
	}
	return false
}

// Role identifies which side of an inquiry an actor is on.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleNone   Role = "" // actor is neither party
)

// Other returns the counterpart role. Only meaningful for buyer/seller.
func (r Role) Other() Role {
	switch r {
	case RoleBuyer:
		return RoleSeller
	case RoleSeller:
		return RoleBuyer
	}
	return RoleNone
}

// UnreadField returns the BSON path of this role's unread counter slot,
// used with $inc / $set so the counter is never rewritten from a stale read.
func (r Role) UnreadField() string {
	return "unread_count." + string(r)
}

// LastReadField returns the BSON path of this role's last-read timestamp.
func (r Role) LastReadField() string {
	return string(r) + "_last_read_at"
}

// UnreadCount holds one non-negative counter per role: messages authored by
// the other party that this party has not yet acknowledged.
type UnreadCount struct {
	Buyer  int `bson:"buyer" json:"buyer"`
	Seller int `bson:"seller" json:"seller"`
}

// For returns the counter slot belonging to the given role.
func (u UnreadCount) For(role Role) int {
	switch role {
	case RoleBuyer:
		return u.Buyer
	case RoleSeller:
		return u.Seller
	}
	return 0
}

// Inquiry is one buyer/seller conversation thread about one listing. The
// listing fields are a snapshot captured at creation time and deliberately
// never re-synced with the live listing.
type Inquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemID    primitive.ObjectID `bson:"item_id" json:"item_id"`
	ItemTitle string             `bson:"item_title" json:"item_title"`
	ItemImage string             `bson:"item_image,omitempty" json:"item_image,omitempty"`

	BuyerID    primitive.ObjectID `bson:"buyer_id" json:"buyer_id"`
	BuyerName  string             `bson:"buyer_name" json:"buyer_name"`
	SellerID   primitive.ObjectID `bson:"seller_id" json:"seller_id"`
	SellerName string             `bson:"seller_name" json:"seller_name"`

	Status       InquiryStatus      `bson:"status" json:"status"`
	ReportReason string             `bson:"report_reason,omitempty" json:"report_reason,omitempty"`
	ReporterID   primitive.ObjectID `bson:"reporter_id,omitempty" json:"reporter_id,omitempty"`

	LastMessage   string             `bson:"last_message" json:"last_message"`
	LastMessageAt time.Time          `bson:"last_message_at" json:"last_message_at"`
	LastSenderID  primitive.ObjectID `bson:"last_sender_id" json:"last_sender_id"`
	MessageCount  int                `bson:"message_count" json:"message_count"`
	UnreadCount   UnreadCount        `bson:"unread_count" json:"unread_count"`

	BuyerLastReadAt  *time.Time `bson:"buyer_last_read_at,omitempty" json:"buyer_last_read_at,omitempty"`
	SellerLastReadAt *time.Time `bson:"seller_last_read_at,omitempty" json:"seller_last_read_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RoleOf is the access guard: it derives the actor's role relative to the
// inquiry. RoleNone means every operation, reads included, must be denied.
func (i *Inquiry) RoleOf(actorID primitive.ObjectID) Role {
	switch actorID {
	case i.BuyerID:
		return RoleBuyer
	case i.SellerID:
		return RoleSeller
	}
	return RoleNone
}
