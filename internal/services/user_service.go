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
	"swingclub/server/internal/auth"
	"swingclub/server/internal/db"
	"swingclub/server/internal/errcode"
	"swingclub/server/internal/models"
)

// IUserService defines the interface for account operations. FindByID doubles
// as the identity lookup the inquiry flow uses to resolve party names.
type IUserService interface {
	Signup(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

const usersCollection = "users"

type userService struct {
	db *mongo.Database
}

// NewUserService creates a new UserService.
func NewUserService(database *mongo.Database) IUserService {
	return &userService{db: database}
}

// Signup creates a new account with a bcrypt password hash.
func (s *userService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, errcode.ErrInvalidParam
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, errcode.ErrStorageFailure.Wrap(err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.db.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		if db.IsMongoDuplicateKeyError(err) {
			return nil, errcode.ErrEmailTaken
		}
		return nil, errcode.ErrStorageFailure.Wrap(fmt.Errorf("failed to insert user: %w", err))
	}
	return user, nil
}

// Login verifies credentials and returns the account. The same failure is
// returned for unknown email and wrong password.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errcode.ErrLoginFailed
		}
		return nil, errcode.ErrStorageFailure.Wrap(fmt.Errorf("error finding user by email: %w", err))
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errcode.ErrLoginFailed
	}
	return &user, nil
}

// FindByID returns the account, or (nil, nil) when it does not exist.
func (s *userService) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errcode.ErrStorageFailure.Wrap(fmt.Errorf("error finding user %s: %w", userID.Hex(), err))
	}
	return &user, nil
}
