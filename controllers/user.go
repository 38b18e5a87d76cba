package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"property-catalogue/config"
	"property-catalogue/models"
	"property-catalogue/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	User    interface{} `json:"user,omitempty"`
}

type userSummary struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone string             `json:"phone,omitempty"`
	Role  string             `json:"role,omitempty"`
}

func summarizeUser(user models.User) userSummary {
	return userSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
	}
}

// isDuplicateEmail reports whether a write failed on the unique email index.
func isDuplicateEmail(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func SignupUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
			return
		}

		exists := config.UserCollection.FindOne(r.Context(), bson.M{"email": req.Email})
		if exists.Err() == nil {
			writeMessage(w, http.StatusConflict, "Email already exists")
			return
		}

		hashedPwd, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create user", err)
			return
		}

		now := time.Now()
		user := models.User{
			ID:        primitive.NewObjectID(),
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Password:  hashedPwd,
			Role:      "user",
			Favorites: []primitive.ObjectID{},
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := config.UserCollection.InsertOne(r.Context(), user); err != nil {
			log.Printf("Error inserting user into the database: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create user", err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid payload")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		// Same message for unknown email and wrong password.
		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&user)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if !utils.CheckPasswordHash(req.Password, user.Password) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, "")
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{
			Message: "Login successful",
			Token:   token,
			User:    summarizeUser(user),
		})
	}
}

type emailRequest struct {
	Email string `json:"email"`
}

func SendLoginOTP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			writeMessage(w, http.StatusBadRequest, "Email is required")
			return
		}

		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Printf("Send OTP lookup error: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending OTP", err)
			return
		}

		otp, err := utils.GenerateOTP()
		if err != nil {
			log.Printf("OTP generation error: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending OTP", err)
			return
		}

		_, err = config.UserCollection.UpdateOne(r.Context(), bson.M{"_id": user.ID}, bson.M{
			"$set": bson.M{
				"otp":       otp,
				"otpExpiry": time.Now().Add(10 * time.Minute),
			},
		})
		if err != nil {
			log.Printf("Error storing OTP: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending OTP", err)
			return
		}

		body := fmt.Sprintf("Your OTP is %s. It expires in 10 minutes.", otp)
		if err := utils.SendEmail(req.Email, "Your Login OTP", body); err != nil {
			log.Printf("Send OTP email error: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending OTP", err)
			return
		}

		writeMessage(w, http.StatusOK, "OTP sent successfully. Check your email.")
	}
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func VerifyLoginOTP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req otpVerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.OTP == "" {
			writeMessage(w, http.StatusBadRequest, "Email and OTP are required")
			return
		}

		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Printf("Verify OTP lookup error: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error verifying OTP", err)
			return
		}

		if user.OTP == "" || user.OTP != req.OTP {
			writeMessage(w, http.StatusBadRequest, "Invalid OTP")
			return
		}
		if user.OTPExpiry.Before(time.Now()) {
			clearOTP(r, user.ID)
			writeMessage(w, http.StatusBadRequest, "OTP has expired")
			return
		}

		clearOTP(r, user.ID)

		token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, "")
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error verifying OTP", err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{
			Message: "Login successful via OTP",
			Token:   token,
			User:    summarizeUser(user),
		})
	}
}

// clearOTP drops the stored code once it has been used or rejected as
// expired.
func clearOTP(r *http.Request, userID primitive.ObjectID) {
	_, err := config.UserCollection.UpdateOne(r.Context(), bson.M{"_id": userID}, bson.M{
		"$unset": bson.M{"otp": "", "otpExpiry": ""},
	})
	if err != nil {
		log.Printf("Error clearing OTP for user %s: %v", userID.Hex(), err)
	}
}

func ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			writeMessage(w, http.StatusBadRequest, "Email is required")
			return
		}

		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Printf("Forgot password lookup error: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending reset link", err)
			return
		}

		resetToken, err := utils.GenerateResetToken()
		if err != nil {
			log.Printf("Reset token generation error: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending reset link", err)
			return
		}

		_, err = config.UserCollection.UpdateOne(r.Context(), bson.M{"_id": user.ID}, bson.M{
			"$set": bson.M{
				"resetPasswordToken":  resetToken,
				"resetPasswordExpiry": time.Now().Add(time.Hour),
			},
		})
		if err != nil {
			log.Printf("Error storing reset token: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending reset link", err)
			return
		}

		resetURL := fmt.Sprintf("%s/user/reset-password?token=%s&email=%s", os.Getenv("FRONTEND_URL"), resetToken, req.Email)
		body := fmt.Sprintf("You requested a password reset. Click here: %s", resetURL)
		if err := utils.SendEmail(req.Email, "Password Reset Request", body); err != nil {
			log.Printf("Send reset email error: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending reset link", err)
			return
		}

		writeMessage(w, http.StatusOK, "Reset link sent to your email. Please check your inbox and spam folder.")
	}
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Token and password are required")
			return
		}

		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"resetPasswordToken": req.Token}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusBadRequest, "Invalid token")
			return
		}
		if err != nil {
			log.Printf("Reset password lookup error: %v", err)
			writeError(w, http.StatusInternalServerError, "Error resetting password", err)
			return
		}

		if user.ResetPasswordExpiry.Before(time.Now()) {
			writeMessage(w, http.StatusBadRequest, "Token has expired")
			return
		}

		hashedPwd, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			writeError(w, http.StatusInternalServerError, "Error resetting password", err)
			return
		}

		_, err = config.UserCollection.UpdateOne(r.Context(), bson.M{"_id": user.ID}, bson.M{
			"$set":   bson.M{"password": hashedPwd, "updatedAt": time.Now()},
			"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpiry": ""},
		})
		if err != nil {
			log.Printf("Error resetting password for user %s: %v", user.ID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Error resetting password", err)
			return
		}

		writeMessage(w, http.StatusOK, "Password has been reset successfully")
	}
}

func GetUserDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Printf("Dashboard fetch error for user %s: %v", userID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

type dashboardUpdateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
}

func UpdateUserDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req dashboardUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
		if err != nil {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}

		update := bson.M{"updatedAt": time.Now()}

		if req.Password != "" {
			if req.CurrentPassword == "" {
				writeMessage(w, http.StatusBadRequest, "Current password is required")
				return
			}
			if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
				writeMessage(w, http.StatusBadRequest, "Current password is incorrect")
				return
			}
			hashedPwd, err := utils.HashPassword(req.Password)
			if err != nil {
				log.Printf("Error hashing password: %v", err)
				writeError(w, http.StatusInternalServerError, "Server error", err)
				return
			}
			update["password"] = hashedPwd
		}

		if req.Name != "" {
			update["name"] = req.Name
		}
		if req.Email != "" {
			update["email"] = req.Email
		}
		if req.Phone != "" {
			update["phone"] = req.Phone
		}

		var updated models.User
		err = config.UserCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": userID},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			// The unique email index rejects updates onto another account's
			// address; surface that the same way signup does.
			if isDuplicateEmail(err) {
				writeMessage(w, http.StatusConflict, "Email already exists")
				return
			}
			log.Printf("Dashboard update error for user %s: %v", userID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{
			Message: "Profile updated successfully!",
			User:    summarizeUser(updated),
		})
	}
}

// GetMe returns the authenticated user or null for guests; used by the
// frontend to auto-fill forms.
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(primitive.ObjectID)
		if !ok {
			writeJSON(w, http.StatusOK, nil)
			return
		}

		var user models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
		if err != nil {
			writeJSON(w, http.StatusOK, nil)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
