package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"property-catalogue/config"
	"property-catalogue/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorites live as an ObjectID array on the user document.

func fetchFavoriteProperties(r *http.Request, userID primitive.ObjectID) ([]models.Property, error) {
	var user models.User
	if err := config.UserCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, err
	}

	properties := []models.Property{}
	if len(user.Favorites) == 0 {
		return properties, nil
	}

	cursor, err := config.PropertyCollection.Find(r.Context(), bson.M{"_id": bson.M{"$in": user.Favorites}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.Context())

	if err := cursor.All(r.Context(), &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func GetFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		properties, err := fetchFavoriteProperties(r, userID)
		if err != nil {
			log.Printf("Error fetching favorites for user %s: %v", userID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, properties)
	}
}

type favoriteRequest struct {
	PropertyID string `json:"propertyId"`
}

// ToggleFavorite adds the property when absent and removes it when present,
// then returns the resolved favorite list.
func ToggleFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req favoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PropertyID == "" {
			writeMessage(w, http.StatusBadRequest, "Property ID required")
			return
		}
		propID, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID format")
			return
		}

		var user models.User
		if err := config.UserCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}

		isFavorite := false
		for _, fav := range user.Favorites {
			if fav == propID {
				isFavorite = true
				break
			}
		}

		// $addToSet/$pull are idempotent, so a racing double-toggle
		// degenerates to a no-op rather than a corrupt list.
		update := bson.M{"$addToSet": bson.M{"favorites": propID}}
		if isFavorite {
			update = bson.M{"$pull": bson.M{"favorites": propID}}
		}

		if _, err := config.UserCollection.UpdateOne(r.Context(), bson.M{"_id": userID}, update); err != nil {
			log.Printf("Error toggling favorite for user %s: %v", userID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		properties, err := fetchFavoriteProperties(r, userID)
		if err != nil {
			log.Printf("Error fetching favorites for user %s: %v", userID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, properties)
	}
}

func ClearFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		_, err := config.UserCollection.UpdateOne(r.Context(), bson.M{"_id": userID}, bson.M{
			"$set": bson.M{"favorites": []primitive.ObjectID{}},
		})
		if err != nil {
			log.Printf("Error clearing favorites for user %s: %v", userID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, []models.Property{})
	}
}
