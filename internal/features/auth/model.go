package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user in the system.
// Posting is anonymous: the profile carries no name, only an optional
// job title and field of study shown next to contributions.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	JobTitle     string             `bson:"jobTitle,omitempty" json:"jobTitle,omitempty"`
	FieldOfStudy string             `bson:"fieldOfStudy,omitempty" json:"fieldOfStudy,omitempty"`
	Reputation   int                `bson:"reputation" json:"reputation"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Principal is the authenticated identity resolved from a session
// token. It never carries the credential.
type Principal struct {
	ID       primitive.ObjectID `json:"id"`
	Email    string             `json:"email"`
	JobTitle string             `json:"jobTitle,omitempty"`
}

// AuthorInfo is the anonymous byline attached to reports and comments:
// no name, no email, just professional context
type AuthorInfo struct {
	ID           primitive.ObjectID `json:"id"`
	JobTitle     string             `json:"jobTitle,omitempty"`
	FieldOfStudy string             `json:"fieldOfStudy,omitempty"`
	Reputation   int                `json:"reputation"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// RegisterRequest represents the payload for account registration
type RegisterRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	JobTitle     string `json:"jobTitle"`
	FieldOfStudy string `json:"fieldOfStudy"`
}

// LoginRequest represents the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse confirms account creation without exposing anything
// beyond the new id
type RegisterResponse struct {
	Message string `json:"message"`
	User    struct {
		ID        primitive.ObjectID `json:"id"`
		CreatedAt time.Time          `json:"createdAt"`
	} `json:"user"`
}

// LoginResponse confirms login; the session itself travels in the cookie
type LoginResponse struct {
	Message string `json:"message"`
	User    struct {
		ID primitive.ObjectID `json:"id"`
	} `json:"user"`
}

// MeResponse reports the session state for the current request
type MeResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *Principal `json:"user,omitempty"`
}
