package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote is a property quote request, submitted by a guest or a logged-in user.
type Quote struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID        *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	PropertyID    primitive.ObjectID  `bson:"propertyId" json:"propertyId"`
	Name          string              `bson:"name" json:"name"`
	Email         string              `bson:"email" json:"email"`
	ContactNumber string              `bson:"contactNumber" json:"contactNumber"`
	Message       string              `bson:"message" json:"message"`
	Status        string              `bson:"status" json:"status"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// QuoteView is the flattened shape returned to admins and users, with the
// referenced property joined in.
type QuoteView struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	Message       string             `bson:"message" json:"message"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	Property      *QuoteProperty     `bson:"property,omitempty" json:"propertyId"`
}

type QuoteProperty struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Title string             `bson:"title" json:"title"`
	City  string             `bson:"city" json:"city"`
	URL   string             `bson:"-" json:"url"`
}
