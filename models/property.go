package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is a GeoJSON point, coordinates ordered [lng, lat].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Rating    float64            `bson:"rating" json:"rating"`
	Approved  bool               `bson:"approved" json:"approved"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Property struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Price            float64            `bson:"price" json:"price"`
	City             string             `bson:"city" json:"city"`
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	Location         *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	PropertyType     string             `bson:"propertyType,omitempty" json:"propertyType,omitempty"`
	BhkType          string             `bson:"bhkType,omitempty" json:"bhkType,omitempty"`
	Furnishing       string             `bson:"furnishing,omitempty" json:"furnishing,omitempty"`
	Bedrooms         int                `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms        int                `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	SuperBuiltupArea string             `bson:"superBuiltupArea,omitempty" json:"superBuiltupArea,omitempty"`
	Developer        string             `bson:"developer,omitempty" json:"developer,omitempty"`
	Project          string             `bson:"project,omitempty" json:"project,omitempty"`
	TransactionType  string             `bson:"transactionType,omitempty" json:"transactionType,omitempty"`
	Status           string             `bson:"status,omitempty" json:"status,omitempty"`
	ReraID           string             `bson:"reraId,omitempty" json:"reraId,omitempty"`
	Images           []string           `bson:"images" json:"images"`
	Amenities        []string           `bson:"amenities" json:"amenities"`
	ActiveStatus     string             `bson:"activeStatus" json:"activeStatus"`
	Reviews          []Review           `bson:"reviews" json:"reviews"`
	AverageRating    float64            `bson:"averageRating" json:"averageRating"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Distance is populated by the $geoNear pipeline only.
	Distance *float64 `bson:"distance,omitempty" json:"distance,omitempty"`
}
