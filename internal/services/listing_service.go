package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"swingclub/server/internal/config"
	"swingclub/server/internal/errcode"
	"swingclub/server/internal/models"
)

// IListingService defines the interface for listing-related operations. Its
// FindListingByID is the catalog lookup the inquiry flow validates against.
type IListingService interface {
	CreateListing(ctx context.Context, userID primitive.ObjectID, title, body, image string, price int64) (*models.Listing, error)
	FindListingByID(ctx context.Context, listingID primitive.ObjectID) (*models.Listing, error)
	FindListingsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error)
	MarkListingSold(ctx context.Context, listingID, userID primitive.ObjectID) error
	HideListing(ctx context.Context, listingID, userID primitive.ObjectID) error
	DeleteListing(ctx context.Context, listingID, userID primitive.ObjectID) error
}

const listingsCollection = "listings"

// listingService implements IListingService.
type listingService struct {
	db  *mongo.Database
	cfg *config.Config
}

// NewListingService creates a new ListingService.
func NewListingService(db *mongo.Database, cfg *config.Config) IListingService {
	return &listingService{db: db, cfg: cfg}
}

// CreateListing creates a new active listing document.
func (s *listingService) CreateListing(ctx context.Context, userID primitive.ObjectID, title, body, image string, price int64) (*models.Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errcode.ErrInvalidParam
	}
	if price < 0 {
		return nil, errcode.ErrInvalidParam
	}

	now := time.Now().UTC()
	listing := &models.Listing{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Image:     image,
		Price:     price,
		Status:    models.ListingStatusActive,
		Deleted:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.db.Collection(listingsCollection).InsertOne(ctx, listing); err != nil {
		return nil, errcode.ErrStorageFailure.Wrap(fmt.Errorf("failed to insert listing for user %s: %w", userID.Hex(), err))
	}
	return listing, nil
}

// FindListingByID finds a non-deleted, non-hidden listing by its ID. It does
// NOT check ownership. Returns (nil, nil) when no such listing is visible, so
// callers can map absence onto their own not-found semantics.
func (s *listingService) FindListingByID(ctx context.Context, listingID primitive.ObjectID) (*models.Listing, error) {
	filter := bson.M{
		"_id":     listingID,
		"deleted": false,
		"status":  bson.M{"$ne": models.ListingStatusHidden},
	}

	var listing models.Listing
	err := s.db.Collection(listingsCollection).FindOne(ctx, filter).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errcode.ErrStorageFailure.Wrap(fmt.Errorf("error finding listing %s: %w", listingID.Hex(), err))
	}
	return &listing, nil
}

// FindListingsByUserID returns the user's own listings, newest first,
// including hidden ones (the owner always sees their full set).
func (s *listingService) FindListingsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error) {
	filter := bson.M{"user_id": userID, "deleted": false}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.db.Collection(listingsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, errcode.ErrStorageFailure.Wrap(fmt.Errorf("error listing for user %s: %w", userID.Hex(), err))
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, errcode.ErrStorageFailure.Wrap(err)
	}
	return listings, nil
}

// MarkListingSold flips the owner's listing to sold.
func (s *listingService) MarkListingSold(ctx context.Context, listingID, userID primitive.ObjectID) error {
	return s.updateOwnListing(ctx, listingID, userID, bson.M{"status": models.ListingStatusSold})
}

// HideListing removes the owner's listing from public view without deleting it.
func (s *listingService) HideListing(ctx context.Context, listingID, userID primitive.ObjectID) error {
	return s.updateOwnListing(ctx, listingID, userID, bson.M{"status": models.ListingStatusHidden})
}

// DeleteListing soft-deletes the owner's listing.
func (s *listingService) DeleteListing(ctx context.Context, listingID, userID primitive.ObjectID) error {
	return s.updateOwnListing(ctx, listingID, userID, bson.M{"deleted": true})
}

// updateOwnListing applies a guarded update that checks ownership and
// liveness in the filter itself.
func (s *listingService) updateOwnListing(ctx context.Context, listingID, userID primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	filter := bson.M{
		"_id":     listingID,
		"user_id": userID,
		"deleted": false,
	}

	res, err := s.db.Collection(listingsCollection).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return errcode.ErrStorageFailure.Wrap(fmt.Errorf("failed to update listing %s: %w", listingID.Hex(), err))
	}
	if res.MatchedCount == 0 {
		return errcode.ErrListingNotOwned
	}
	return nil
}
