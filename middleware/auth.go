package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"property-catalogue/config"
	"property-catalogue/controllers"
	"property-catalogue/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// unauthorized mirrors the handlers' JSON envelope so clients see the
// same {message} shape on auth failures.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func bearerToken(r *http.Request) (string, bool) {
	tokenHeader := r.Header.Get("Authorization")
	if tokenHeader == "" {
		return "", false
	}
	tokenParts := strings.Split(tokenHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}
	return tokenParts[1], true
}

// UserAuth requires a valid user token and verifies the subject still exists.
func UserAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			log.Printf("Missing or malformed Authorization header from request %s %s", r.Method, r.URL)
			unauthorized(w, "Unauthorized: No token provided")
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			log.Printf("Invalid or expired token: %v", err)
			unauthorized(w, "Unauthorized: Invalid token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			unauthorized(w, "Unauthorized: Invalid token")
			return
		}

		count, err := config.UserCollection.CountDocuments(r.Context(), bson.M{"_id": userID})
		if err != nil || count == 0 {
			unauthorized(w, "Unauthorized: User not found")
			return
		}

		ctx := context.WithValue(r.Context(), controllers.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the user when a valid token is present and lets
// guests straight through.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			log.Printf("Optional auth: invalid token, proceeding as guest: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		count, err := config.UserCollection.CountDocuments(r.Context(), bson.M{"_id": userID})
		if err != nil || count == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), controllers.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuth requires a valid token whose subject exists in the admins
// collection.
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			log.Printf("Missing or malformed Authorization header from request %s %s", r.Method, r.URL)
			unauthorized(w, "Unauthorized: No token provided")
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			log.Printf("Invalid or expired admin token: %v", err)
			unauthorized(w, "Unauthorized: Invalid token")
			return
		}

		adminID, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			unauthorized(w, "Unauthorized: Invalid token")
			return
		}

		count, err := config.AdminCollection.CountDocuments(r.Context(), bson.M{"_id": adminID})
		if err != nil || count == 0 {
			unauthorized(w, "Unauthorized: Admin not found")
			return
		}

		ctx := context.WithValue(r.Context(), controllers.AdminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
