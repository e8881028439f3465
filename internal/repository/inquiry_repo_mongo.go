package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"swingclub/server/internal/models"
)

const (
	inquiriesCollection       = "inquiries"
	inquiryMessagesCollection = "inquiry_messages"
)

// mongoInquiryRepository implements InquiryRepository on MongoDB. Multi-record
// writes run inside a session transaction; single-document deltas rely on
// Mongo's per-document atomicity of $inc/$set updates.
type mongoInquiryRepository struct {
	db       *mongo.Database
	inqs     *mongo.Collection
	messages *mongo.Collection
}

// NewMongoInquiryRepository creates an InquiryRepository backed by the given database.
func NewMongoInquiryRepository(db *mongo.Database) InquiryRepository {
	return &mongoInquiryRepository{
		db:       db,
		inqs:     db.Collection(inquiriesCollection),
		messages: db.Collection(inquiryMessagesCollection),
	}
}

func (r *mongoInquiryRepository) GetInquiry(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	var inq models.Inquiry
	err := r.inqs.FindOne(ctx, bson.M{"_id": id}).Decode(&inq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding inquiry %s: %w", id.Hex(), err)
	}
	return &inq, nil
}

// withTransaction runs fn inside a session transaction.
func (r *mongoInquiryRepository) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (r *mongoInquiryRepository) CreateWithFirstMessage(ctx context.Context, inq *models.Inquiry, msg *models.InquiryMessage) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.inqs.InsertOne(sc, inq); err != nil {
			return fmt.Errorf("failed to insert inquiry: %w", err)
		}
		msg.InquiryID = inq.ID
		if _, err := r.messages.InsertOne(sc, msg); err != nil {
			return fmt.Errorf("failed to insert first message: %w", err)
		}
		return nil
	})
}

func (r *mongoInquiryRepository) AppendMessage(ctx context.Context, msg *models.InquiryMessage, recipient models.Role) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		// The filter re-checks status inside the transaction so a thread
		// closed between the service's load and this write stays closed.
		filter := bson.M{
			"_id":    msg.InquiryID,
			"status": models.InquiryStatusActive,
		}
		update := bson.M{
			"$inc": bson.M{
				"message_count":         1,
				recipient.UnreadField(): 1,
			},
			"$set": bson.M{
				"last_message":    msg.Content,
				"last_message_at": msg.CreatedAt,
				"last_sender_id":  msg.SenderID,
				"updated_at":      msg.CreatedAt,
			},
		}
		res, err := r.inqs.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("failed to update inquiry summary: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStateConflict
		}
		if _, err := r.messages.InsertOne(sc, msg); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		return nil
	})
}

func (r *mongoInquiryRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.InquiryStatus, reason string, reporterID primitive.ObjectID) error {
	now := time.Now().UTC()
	set := bson.M{
		"status":     to,
		"updated_at": now,
	}
	if to == models.InquiryStatusReported {
		set["report_reason"] = reason
		set["reporter_id"] = reporterID
	}

	// Guarding on the previous status makes the transition itself atomic:
	// two racing callers cannot both move the thread out of active.
	filter := bson.M{"_id": id, "status": from}
	res, err := r.inqs.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrStateConflict
	}
	return nil
}

func (r *mongoInquiryRepository) MarkRead(ctx context.Context, id primitive.ObjectID, role models.Role, at time.Time) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		update := bson.M{
			"$set": bson.M{
				role.UnreadField():   0,
				role.LastReadField(): at,
				"updated_at":         at,
			},
		}
		res, err := r.inqs.UpdateOne(sc, bson.M{"_id": id}, update)
		if err != nil {
			return fmt.Errorf("failed to reset unread counter: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}

		msgFilter := bson.M{
			"inquiry_id":  id,
			"sender_type": role.Other(),
			"is_read":     false,
		}
		msgUpdate := bson.M{"$set": bson.M{"is_read": true, "updated_at": at}}
		if _, err := r.messages.UpdateMany(sc, msgFilter, msgUpdate); err != nil {
			return fmt.Errorf("failed to mark messages read: %w", err)
		}
		return nil
	})
}

func (r *mongoInquiryRepository) ListMessages(ctx context.Context, inquiryID primitive.ObjectID) ([]models.InquiryMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"inquiry_id": inquiryID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing messages for inquiry %s: %w", inquiryID.Hex(), err)
	}
	defer cursor.Close(ctx)

	messages := []models.InquiryMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("error decoding messages for inquiry %s: %w", inquiryID.Hex(), err)
	}
	return messages, nil
}

func (r *mongoInquiryRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Inquiry, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"buyer_id": userID},
			{"seller_id": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.inqs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing inquiries for user %s: %w", userID.Hex(), err)
	}
	defer cursor.Close(ctx)

	inquiries := []models.Inquiry{}
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, fmt.Errorf("error decoding inquiries for user %s: %w", userID.Hex(), err)
	}
	return inquiries, nil
}
