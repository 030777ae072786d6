package subscriptions

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription follows exactly one target: a report or a category,
// never both. The partial unique indexes on (userId, reportId) and
// (userId, categoryId) keep each pairing single.
type Subscription struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID  `bson:"userId" json:"userId"`
	ReportID   *primitive.ObjectID `bson:"reportId,omitempty" json:"reportId"`
	CategoryID *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}

// ReportRef is the subscribed report's card in listings
type ReportRef struct {
	ID    primitive.ObjectID `json:"id"`
	Title string             `json:"title"`
	Slug  string             `json:"slug"`
}

// CategoryRef is the subscribed category's card in listings
type CategoryRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}

type SubscriptionWithTarget struct {
	Subscription
	Report   *ReportRef   `json:"report"`
	Category *CategoryRef `json:"category"`
}

type CreateSubscriptionRequest struct {
	ReportID   string `json:"reportId"`
	CategoryID string `json:"categoryId"`
}

// SubscriptionResponse pairs a status message with the subscription,
// whether freshly created or already present
type SubscriptionResponse struct {
	Message      string       `json:"message"`
	Subscription Subscription `json:"subscription"`
}
