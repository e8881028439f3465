package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageType tags the content of an inquiry message.
type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeSystem MessageType = "system"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeSystem:
		return true
	}
	return false
}

// InquiryMessage is one authored entry in an inquiry thread. It belongs to
// exactly one inquiry and is mutated at most once after creation, by the
// read-marking batch that flips IsRead.
type InquiryMessage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InquiryID  primitive.ObjectID `bson:"inquiry_id" json:"inquiry_id"`
	SenderID   primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	SenderName string             `bson:"sender_name" json:"sender_name"`
	SenderType Role               `bson:"sender_type" json:"sender_type"`
	Type       MessageType        `bson:"type" json:"type"`
	Content    string             `bson:"content" json:"content"`
	IsRead     bool               `bson:"is_read" json:"is_read"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
