package comments

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

var ErrCommentNotFound = errors.New("comment not found")

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("comments")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys: bson.D{{Key: "reportId", Value: 1}, {Key: "createdAt", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		log.Printf("Warning: failed to create comment index: %v", err)
	}

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, comment *Comment) error {
	comment.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	comment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Comment, error) {
	var comment Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByReport returns a report's comments oldest-first, the order the
// discussion unfolded in
func (r *Repository) ListByReport(ctx context.Context, reportID primitive.ObjectID) ([]Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"reportId": reportID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *Repository) CountByReport(ctx context.Context, reportID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"reportId": reportID})
}

// UpdateContent changes a comment's text and returns the updated comment
func (r *Repository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment Comment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"content": content}}, opts).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}
