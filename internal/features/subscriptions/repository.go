package subscriptions

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed    = errors.New("already subscribed")
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("subscriptions")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Partial unique indexes: one subscription per (user, report) and
	// per (user, category). Partial so documents missing the field do
	// not collide on null.
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "reportId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"reportId": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "categoryId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"categoryId": bson.M{"$exists": true}}),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("Warning: failed to create subscription indexes: %v", err)
	}

	return &Repository{collection: collection}
}

// Create inserts the subscription. A duplicate-key error means the
// caller lost a race against an identical subscription and comes back
// as ErrAlreadySubscribed.
func (r *Repository) Create(ctx context.Context, sub *Subscription) error {
	sub.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadySubscribed
		}
		return err
	}
	sub.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByTarget looks up the caller's subscription to the given report
// or category
func (r *Repository) FindByTarget(ctx context.Context, userID primitive.ObjectID, reportID, categoryID *primitive.ObjectID) (*Subscription, error) {
	filter := bson.M{"userId": userID}
	if reportID != nil {
		filter["reportId"] = *reportID
	}
	if categoryID != nil {
		filter["categoryId"] = *categoryID
	}

	var sub Subscription
	err := r.collection.FindOne(ctx, filter).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ListByUser returns all of a user's subscriptions, newest first
func (r *Repository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Subscription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []Subscription{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// DeleteOwned removes the subscription only when it belongs to the
// given user. An absent and an other-owned subscription are
// indistinguishable to the caller.
func (r *Repository) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
