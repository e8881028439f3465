package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"swingclub/server/internal/api/middleware"
	"swingclub/server/internal/models"
	"swingclub/server/internal/services"
)

// --- Mocks ---

// MockInquiryService
type MockInquiryService struct {
	mock.Mock
}

func (m *MockInquiryService) CreateInquiry(ctx context.Context, actor *services.Actor, itemID primitive.ObjectID, message string) (primitive.ObjectID, error) {
	args := m.Called(ctx, actor, itemID, message)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockInquiryService) SendMessage(ctx context.Context, actor *services.Actor, inquiryID primitive.ObjectID, msgType models.MessageType, content string) (primitive.ObjectID, error) {
	args := m.Called(ctx, actor, inquiryID, msgType, content)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockInquiryService) GetInquiry(ctx context.Context, actor *services.Actor, inquiryID primitive.ObjectID) (*models.Inquiry, error) {
	args := m.Called(ctx, actor, inquiryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *MockInquiryService) GetInquiryMessages(ctx context.Context, actor *services.Actor, inquiryID primitive.ObjectID) ([]models.InquiryMessage, error) {
	args := m.Called(ctx, actor, inquiryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InquiryMessage), args.Error(1)
}

func (m *MockInquiryService) GetUserInquiries(ctx context.Context, actor *services.Actor) ([]models.Inquiry, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Inquiry), args.Error(1)
}

func (m *MockInquiryService) UpdateInquiryStatus(ctx context.Context, actor *services.Actor, inquiryID primitive.ObjectID, newStatus models.InquiryStatus, reason string) error {
	args := m.Called(ctx, actor, inquiryID, newStatus, reason)
	return args.Error(0)
}

func (m *MockInquiryService) MarkInquiryAsRead(ctx context.Context, actor *services.Actor, inquiryID primitive.ObjectID) error {
	args := m.Called(ctx, actor, inquiryID)
	return args.Error(0)
}

// MockListingService
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) CreateListing(ctx context.Context, userID primitive.ObjectID, title, body, image string, price int64) (*models.Listing, error) {
	args := m.Called(ctx, userID, title, body, image, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) FindListingByID(ctx context.Context, listingID primitive.ObjectID) (*models.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) FindListingsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingService) MarkListingSold(ctx context.Context, listingID, userID primitive.ObjectID) error {
	args := m.Called(ctx, listingID, userID)
	return args.Error(0)
}

func (m *MockListingService) HideListing(ctx context.Context, listingID, userID primitive.ObjectID) error {
	args := m.Called(ctx, listingID, userID)
	return args.Error(0)
}

func (m *MockListingService) DeleteListing(ctx context.Context, listingID, userID primitive.ObjectID) error {
	args := m.Called(ctx, listingID, userID)
	return args.Error(0)
}

// asActor injects the authenticated identity the way AuthMiddleware would.
func asActor(actor *services.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ContextKeyUserID, actor.ID.Hex())
			c.Set(middleware.ContextKeyUserName, actor.Name)
		}
		c.Next()
	}
}
