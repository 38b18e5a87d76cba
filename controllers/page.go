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
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetPages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cursor, err := config.PageCollection.Find(r.Context(), bson.M{})
		if err != nil {
			log.Printf("Error fetching pages: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}
		defer cursor.Close(r.Context())

		pages := []models.Page{}
		if err := cursor.All(r.Context(), &pages); err != nil {
			log.Printf("Error decoding pages: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, pages)
	}
}

func GetPageBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := mux.Vars(r)["slug"]

		var page models.Page
		err := config.PageCollection.FindOne(r.Context(), bson.M{"slug": slug}).Decode(&page)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Page not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching page %s: %v", slug, err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}

func GetPageByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid page ID")
			return
		}

		var page models.Page
		err = config.PageCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&page)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Page not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching page %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}

type pageRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

func CreatePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if req.Title == "" || req.Slug == "" {
			writeMessage(w, http.StatusBadRequest, "Title and slug are required")
			return
		}

		now := time.Now()
		page := models.Page{
			ID:        primitive.NewObjectID(),
			Title:     req.Title,
			Slug:      req.Slug,
			Content:   req.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := config.PageCollection.InsertOne(r.Context(), page); err != nil {
			log.Printf("Error creating page: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}

func UpdatePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid page ID")
			return
		}

		var req pageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if req.Title != "" {
			update["title"] = req.Title
		}
		if req.Slug != "" {
			update["slug"] = req.Slug
		}
		if req.Content != "" {
			update["content"] = req.Content
		}

		var page models.Page
		err = config.PageCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": objID},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&page)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Page not found")
			return
		}
		if err != nil {
			log.Printf("Error updating page %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}

func DeletePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid page ID")
			return
		}

		res, err := config.PageCollection.DeleteOne(r.Context(), bson.M{"_id": objID})
		if err != nil {
			log.Printf("Error deleting page %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}
		if res.DeletedCount == 0 {
			writeMessage(w, http.StatusNotFound, "Page not found")
			return
		}

		writeMessage(w, http.StatusOK, "Page deleted")
	}
}
