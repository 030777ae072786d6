package categories

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups reports by discipline. Categories are seeded at
// startup and never mutated through the API.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug        string             `bson:"slug" json:"slug"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// CategoryRef is the embedded shape other features attach to their
// responses
type CategoryRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}
