package categories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repository struct {
	categoriesCollection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	categoriesCollection := db.Collection("categories")

	categoriesCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &Repository{
		categoriesCollection: categoriesCollection,
	}
}

// SeedDefaults upserts the initial categories by slug. Re-running at
// every startup is safe; existing rows keep whatever they already have.
func (r *Repository) SeedDefaults(ctx context.Context) error {
	defaults := []Category{
		{Name: "AI Research", Slug: "ai-research", Description: "Mistakes and learnings in AI research"},
		{Name: "Leadership", Slug: "leadership", Description: "Management and leadership failures in scientific contexts"},
		{Name: "Publishing", Slug: "publishing", Description: "Publication and peer review issues"},
	}

	for _, category := range defaults {
		_, err := r.categoriesCollection.UpdateOne(ctx,
			bson.M{"slug": category.Slug},
			bson.M{"$setOnInsert": bson.M{
				"slug":        category.Slug,
				"name":        category.Name,
				"description": category.Description,
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListCategories returns all categories sorted by name
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	cursor, err := r.categoriesCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug retrieves a single category by its slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	err := r.categoriesCollection.FindOne(ctx, bson.M{"slug": slug}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetByID retrieves a single category by id
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	var category Category
	err := r.categoriesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}
