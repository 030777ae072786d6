package reports

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
	ErrReportNotFound = errors.New("report not found")
	ErrSlugTaken      = errors.New("slug already taken")
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("reports")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("Warning: failed to create report indexes: %v", err)
	}

	return &Repository{collection: collection}
}

// Create inserts the report and fills in its ID. A duplicate slug,
// whether from a stale probe or a concurrent insert, comes back as
// ErrSlugTaken so the caller can re-run slug allocation.
func (r *Repository) Create(ctx context.Context, report *Report) error {
	report.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlugTaken
		}
		return err
	}
	report.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Report, error) {
	var report Report
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	var report Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// List returns at most ListLimit reports, optionally filtered by
// category. Unknown sort values fall back to newest-first.
func (r *Repository) List(ctx context.Context, categoryID *primitive.ObjectID, sort string) ([]Report, error) {
	filter := bson.M{}
	if categoryID != nil {
		filter["categoryId"] = *categoryID
	}

	var order bson.D
	switch sort {
	case SortVotes:
		order = bson.D{{Key: "votes", Value: -1}, {Key: "createdAt", Value: -1}}
	case SortViews:
		order = bson.D{{Key: "viewCount", Value: -1}, {Key: "createdAt", Value: -1}}
	default:
		order = bson.D{{Key: "createdAt", Value: -1}}
	}

	opts := options.Find().SetSort(order).SetLimit(ListLimit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// IncrementViewCount bumps the view counter without touching anything else
func (r *Repository) IncrementViewCount(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"viewCount": 1}})
	return err
}

// Update applies the given field changes and returns the updated report
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Report, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var report Report
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrReportNotFound
	}
	return nil
}
