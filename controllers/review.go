package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"property-catalogue/config"
	"property-catalogue/models"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// approvedRatingExpr recomputes averageRating from the reviews array inside
// the same update that mutates it, so concurrent review writes cannot leave a
// stale aggregate. Average over approved reviews only, 0 when there are none.
func approvedRatingExpr() bson.M {
	return bson.M{"$let": bson.M{
		"vars": bson.M{"approvedReviews": bson.M{"$filter": bson.M{
			"input": bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
			"as":    "r",
			"cond":  "$$r.approved",
		}}},
		"in": bson.M{"$cond": bson.A{
			bson.M{"$gt": bson.A{bson.M{"$size": "$$approvedReviews"}, 0}},
			bson.M{"$avg": "$$approvedReviews.rating"},
			0,
		}},
	}}
}

type reviewRequest struct {
	Name    string  `json:"name"`
	Message string  `json:"message"`
	Rating  float64 `json:"rating"`
}

func AddReview(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			writeMessage(w, http.StatusBadRequest, "Name is required")
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			writeMessage(w, http.StatusBadRequest, "Rating must be between 1 and 5")
			return
		}

		review := models.Review{
			ID:        primitive.NewObjectID(),
			Name:      req.Name,
			Message:   req.Message,
			Rating:    req.Rating,
			Approved:  false,
			CreatedAt: time.Now(),
		}

		// $literal keeps user-supplied strings from being read as
		// aggregation expressions.
		update := mongo.Pipeline{
			{{Key: "$set", Value: bson.M{"reviews": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
				bson.M{"$literal": bson.A{review}},
			}}}}},
			{{Key: "$set", Value: bson.M{"averageRating": approvedRatingExpr()}}},
		}

		var property models.Property
		err = config.PropertyCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": objID},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&property)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		if err != nil {
			log.Printf("Add review error for property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		go deletePropertyCache(redisClient)

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message":       "Review submitted for approval",
			"averageRating": property.AverageRating,
			"reviews":       property.Reviews,
		})
	}
}

func GetReviewsByProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var property models.Property
		err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		if err != nil {
			log.Printf("Get reviews error for property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"propertyName":  property.Title,
			"averageRating": property.AverageRating,
			"reviews":       property.Reviews,
		})
	}
}

type flattenedReview struct {
	models.Review `bson:",inline"`
	PropertyID    primitive.ObjectID `json:"propertyId"`
	PropertyTitle string             `json:"propertyTitle"`
	PropertyCity  string             `json:"propertyCity"`
}

// GetAllReviews returns every review across all properties for moderation.
func GetAllReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projection := options.Find().SetProjection(bson.M{
			"title": 1, "city": 1, "reviews": 1,
		})
		cursor, err := config.PropertyCollection.Find(r.Context(), bson.M{}, projection)
		if err != nil {
			log.Printf("Get all reviews error: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}
		defer cursor.Close(r.Context())

		var properties []models.Property
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding properties for review list: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		allReviews := []flattenedReview{}
		for _, property := range properties {
			for _, review := range property.Reviews {
				allReviews = append(allReviews, flattenedReview{
					Review:        review,
					PropertyID:    property.ID,
					PropertyTitle: property.Title,
					PropertyCity:  property.City,
				})
			}
		}

		writeJSON(w, http.StatusOK, allReviews)
	}
}

type approvalRequest struct {
	Approved *bool `json:"approved"`
}

func ToggleReviewApproval(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		propID, err := primitive.ObjectIDFromHex(vars["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}
		reviewID, err := primitive.ObjectIDFromHex(vars["reviewId"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		var req approvalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Approved == nil {
			writeMessage(w, http.StatusBadRequest, "Approved flag is required")
			return
		}
		approved := *req.Approved

		update := mongo.Pipeline{
			{{Key: "$set", Value: bson.M{"reviews": bson.M{"$map": bson.M{
				"input": "$reviews",
				"as":    "r",
				"in": bson.M{"$cond": bson.A{
					bson.M{"$eq": bson.A{"$$r._id", reviewID}},
					bson.M{"$mergeObjects": bson.A{"$$r", bson.M{"approved": approved}}},
					"$$r",
				}},
			}}}}},
			{{Key: "$set", Value: bson.M{"averageRating": approvedRatingExpr()}}},
		}

		var property models.Property
		err = config.PropertyCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": propID, "reviews._id": reviewID},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&property)
		if err == mongo.ErrNoDocuments {
			count, countErr := config.PropertyCollection.CountDocuments(r.Context(), bson.M{"_id": propID})
			if countErr == nil && count > 0 {
				writeMessage(w, http.StatusNotFound, "Review not found")
			} else {
				writeMessage(w, http.StatusNotFound, "Property not found")
			}
			return
		}
		if err != nil {
			log.Printf("Toggle review approval error for property %s: %v", propID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		go deletePropertyCache(redisClient)

		verb := "hidden"
		if approved {
			verb = "approved"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":       fmt.Sprintf("Review %s successfully", verb),
			"reviews":       property.Reviews,
			"averageRating": property.AverageRating,
		})
	}
}
