package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingStatus is the marketplace state of a listing.
type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
	ListingStatusHidden ListingStatus = "hidden"
)

// Listing represents an item offered for sale by a member.
type Listing struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"` // seller
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Price     int64              `bson:"price" json:"price"`
	Status    ListingStatus      `bson:"status" json:"status"`
	Deleted   bool               `bson:"deleted" json:"-"` // soft delete flag
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
