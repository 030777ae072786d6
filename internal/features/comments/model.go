package comments

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a discussion entry under a report. ParentID is nil for
// top-level comments; replies point at a top-level parent, never at
// another reply.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Content   string              `bson:"content" json:"content"`
	AuthorID  primitive.ObjectID  `bson:"authorId" json:"authorId"`
	ReportID  primitive.ObjectID  `bson:"reportId" json:"reportId"`
	ParentID  *primitive.ObjectID `bson:"parentId,omitempty" json:"parentId"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// CommentAuthor is the byline attached to a comment in responses
type CommentAuthor struct {
	ID         primitive.ObjectID `json:"id"`
	JobTitle   string             `json:"jobTitle,omitempty"`
	Reputation int                `json:"reputation"`
}

type CommentResponse struct {
	Comment
	Author CommentAuthor `json:"author"`
}

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ReportID string `json:"reportId" binding:"required"`
	ParentID string `json:"parentId"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
