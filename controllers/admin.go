package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"property-catalogue/config"
	"property-catalogue/models"
	"property-catalogue/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type adminSignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignupAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminSignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
			return
		}

		exists := config.AdminCollection.FindOne(r.Context(), bson.M{"email": req.Email})
		if exists.Err() == nil {
			writeMessage(w, http.StatusConflict, "Email already exists")
			return
		}

		hashedPwd, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing admin password: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		now := time.Now()
		admin := models.Admin{
			ID:        primitive.NewObjectID(),
			Name:      req.Name,
			Email:     req.Email,
			Password:  hashedPwd,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := config.AdminCollection.InsertOne(r.Context(), admin); err != nil {
			log.Printf("Error inserting admin: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeMessage(w, http.StatusCreated, "Admin registered successfully")
	}
}

func LoginAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid payload")
			return
		}

		var admin models.Admin
		err := config.AdminCollection.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&admin)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if !utils.CheckPasswordHash(req.Password, admin.Password) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := utils.GenerateJWT(admin.ID.Hex(), admin.Email, "admin", admin.Name)
		if err != nil {
			log.Printf("Error generating admin JWT token: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{
			Token: token,
			User: map[string]interface{}{
				"_id":    admin.ID,
				"name":   admin.Name,
				"email":  admin.Email,
				"phone":  admin.Phone,
				"avatar": admin.Avatar,
			},
		})
	}
}

func GetAdminProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := r.Context().Value(AdminIDKey).(primitive.ObjectID)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var admin models.Admin
		err := config.AdminCollection.FindOne(r.Context(), bson.M{"_id": adminID}).Decode(&admin)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Admin not found")
			return
		}
		if err != nil {
			log.Printf("Admin profile fetch error: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, admin)
	}
}
