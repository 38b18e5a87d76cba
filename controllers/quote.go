package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"property-catalogue/config"
	"property-catalogue/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type quoteRequest struct {
	PropertyID    string `json:"propertyId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Message       string `json:"message"`
}

// CreateQuote accepts quote requests from guests and logged-in users alike;
// optional auth attaches the user when present.
func CreateQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if req.PropertyID == "" || req.Name == "" || req.Email == "" || req.ContactNumber == "" || req.Message == "" {
			writeMessage(w, http.StatusBadRequest, "Property, name, email, contact number and message are required")
			return
		}
		propID, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		now := time.Now()
		quote := models.Quote{
			ID:            primitive.NewObjectID(),
			PropertyID:    propID,
			Name:          req.Name,
			Email:         req.Email,
			ContactNumber: req.ContactNumber,
			Message:       req.Message,
			Status:        "Pending",
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID); ok {
			quote.UserID = &userID
		}

		if _, err := config.QuoteCollection.InsertOne(r.Context(), quote); err != nil {
			log.Printf("Error creating quote: %v", err)
			writeError(w, http.StatusInternalServerError, "Error creating quote", err)
			return
		}

		writeJSON(w, http.StatusCreated, quote)
	}
}

func quoteViewPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "properties",
			"localField":   "propertyId",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$property",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

func fetchQuoteViews(r *http.Request, match bson.M) ([]models.QuoteView, error) {
	cursor, err := config.QuoteCollection.Aggregate(r.Context(), quoteViewPipeline(match))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.Context())

	views := []models.QuoteView{}
	if err := cursor.All(r.Context(), &views); err != nil {
		return nil, err
	}
	for i := range views {
		if views[i].Property != nil {
			views[i].Property.URL = "/properties/" + views[i].Property.ID.Hex()
		}
	}
	return views, nil
}

func GetAllQuotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := fetchQuoteViews(r, bson.M{})
		if err != nil {
			log.Printf("Error fetching quotes: %v", err)
			writeError(w, http.StatusInternalServerError, "Error fetching quotes", err)
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func GetMyQuotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		views, err := fetchQuoteViews(r, bson.M{"userId": userID})
		if err != nil {
			log.Printf("Error fetching quotes for user %s: %v", userID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Error fetching my quotes", err)
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func GetQuoteByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid quote ID")
			return
		}

		views, err := fetchQuoteViews(r, bson.M{"_id": objID})
		if err != nil {
			log.Printf("Error fetching quote %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Error fetching quote", err)
			return
		}
		if len(views) == 0 {
			writeMessage(w, http.StatusNotFound, "Quote not found")
			return
		}

		writeJSON(w, http.StatusOK, views[0])
	}
}

func DeleteQuoteByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid quote ID")
			return
		}

		res, err := config.QuoteCollection.DeleteOne(r.Context(), bson.M{"_id": objID})
		if err != nil {
			log.Printf("Error deleting quote %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Error deleting quote", err)
			return
		}
		if res.DeletedCount == 0 {
			writeMessage(w, http.StatusNotFound, "Quote not found")
			return
		}

		writeMessage(w, http.StatusOK, "Quote deleted")
	}
}
