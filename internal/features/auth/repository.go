package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

type Repository struct {
	usersCollection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	usersCollection := db.Collection("users")

	// The unique index is the authoritative duplicate-email guard;
	// the handler's pre-check only improves the error message.
	usersCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &Repository{
		usersCollection: usersCollection,
	}
}

// CreateUser inserts a new user
func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	user.ID = primitive.NewObjectID()
	user.Reputation = 0
	user.CreatedAt = time.Now()

	_, err := r.usersCollection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

// GetUserByEmail retrieves a user by email (exact, case-sensitive match)
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.usersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, userID primitive.ObjectID) (*User, error) {
	var user User
	err := r.usersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindPrincipalByID resolves a user into the minimal authenticated
// identity handed to handlers. The credential never leaves this layer.
func (r *Repository) FindPrincipalByID(ctx context.Context, userID primitive.ObjectID) (*Principal, error) {
	var user User
	err := r.usersCollection.FindOne(ctx, bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"email": 1, "jobTitle": 1}),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &Principal{
		ID:       user.ID,
		Email:    user.Email,
		JobTitle: user.JobTitle,
	}, nil
}

// GetAuthorInfo returns the public author fields shown next to reports
// and comments
func (r *Repository) GetAuthorInfo(ctx context.Context, userID primitive.ObjectID) (*AuthorInfo, error) {
	var user User
	err := r.usersCollection.FindOne(ctx, bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"jobTitle": 1, "fieldOfStudy": 1, "reputation": 1, "createdAt": 1}),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &AuthorInfo{
		ID:           user.ID,
		JobTitle:     user.JobTitle,
		FieldOfStudy: user.FieldOfStudy,
		Reputation:   user.Reputation,
		CreatedAt:    user.CreatedAt,
	}, nil
}
