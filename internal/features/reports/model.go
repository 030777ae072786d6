package reports

import (
	"time"

	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/categories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sort constants
const (
	SortNewest = "newest"
	SortVotes  = "votes"
	SortViews  = "views"
)

// ListLimit caps every report listing
const ListLimit = 20

// Report is a single postmortem entry: what happened, why, and what
// the author took away from it. The slug is derived from the title at
// creation and never changes, even when the title is edited.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug        string             `bson:"slug" json:"slug"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Reason      string             `bson:"reason" json:"reason"`
	Learning    string             `bson:"learning" json:"learning"`
	AuthorID    primitive.ObjectID `bson:"authorId" json:"authorId"`
	CategoryID  primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	ViewCount   int                `bson:"viewCount" json:"viewCount"`
	Votes       int                `bson:"votes" json:"votes"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Request DTOs

type CreateReportRequest struct {
	Title       string `json:"title" binding:"required"`
	CategoryID  string `json:"categoryId" binding:"required"`
	Description string `json:"description" binding:"required"`
	Reason      string `json:"reason"`
	Learning    string `json:"learning"`
}

// UpdateReportRequest carries partial edits; empty fields stay unchanged
type UpdateReportRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
	Learning    string `json:"learning"`
}

// Response DTOs

// ListAuthor is the trimmed byline shown on listing cards
type ListAuthor struct {
	JobTitle   string `json:"jobTitle,omitempty"`
	Reputation int    `json:"reputation"`
}

type ReportListItem struct {
	Report
	Author       ListAuthor          `json:"author"`
	Category     categories.Category `json:"category"`
	CommentCount int64               `json:"commentCount"`
}

// CommentView is the comment shape embedded in a report detail.
// Declared here (rather than importing the comments feature) so the
// dependency between the two features stays one-directional.
type CommentView struct {
	ID        primitive.ObjectID  `json:"id"`
	Content   string              `json:"content"`
	ParentID  *primitive.ObjectID `json:"parentId"`
	CreatedAt time.Time           `json:"createdAt"`
	Author    auth.AuthorInfo     `json:"author"`
}

type ReportDetail struct {
	Report
	Author   auth.AuthorInfo     `json:"author"`
	Category categories.Category `json:"category"`
	Comments []CommentView       `json:"comments"`
}
