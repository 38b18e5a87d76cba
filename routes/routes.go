package routes

import (
	"net/http"

	"property-catalogue/controllers"
	"property-catalogue/middleware"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func Routes(router *mux.Router, redisClient *redis.Client) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Property API running"))
	}).Methods("GET")

	// Property routes. Fixed paths are registered before /properties/{id}
	// so mux does not swallow them as an id.
	router.HandleFunc("/properties/geocode", controllers.GeocodeAddress()).Methods("GET")
	router.HandleFunc("/properties/compare-properties", controllers.CompareProperties()).Methods("GET")
	router.HandleFunc("/properties/nearby", controllers.GetNearbyProperties()).Methods("POST")
	router.HandleFunc("/properties/reviews", controllers.GetAllReviews()).Methods("GET")

	router.HandleFunc("/properties", controllers.GetProperties(redisClient)).Methods("GET")
	router.HandleFunc("/properties", controllers.CreateProperty(redisClient)).Methods("POST")
	router.HandleFunc("/properties/{id}", controllers.GetPropertyByID()).Methods("GET")
	router.HandleFunc("/properties/{id}", controllers.UpdateProperty(redisClient)).Methods("PUT")
	router.HandleFunc("/properties/{id}", controllers.DeleteProperty(redisClient)).Methods("DELETE")
	router.HandleFunc("/properties/{id}/duplicate", controllers.DuplicateProperty(redisClient)).Methods("POST")
	router.HandleFunc("/properties/{id}/related", controllers.GetRelatedProperties()).Methods("GET")

	// Reviews
	router.HandleFunc("/properties/{id}/reviews", controllers.AddReview(redisClient)).Methods("POST")
	router.HandleFunc("/properties/{id}/reviews", controllers.GetReviewsByProperty()).Methods("GET")
	router.HandleFunc("/properties/{id}/reviews/{reviewId}/approval", controllers.ToggleReviewApproval(redisClient)).Methods("PATCH")

	// User auth
	router.HandleFunc("/user/signup", controllers.SignupUser()).Methods("POST")
	router.HandleFunc("/user/login", controllers.LoginUser()).Methods("POST")
	router.HandleFunc("/user/login/send-otp", controllers.SendLoginOTP()).Methods("POST")
	router.HandleFunc("/user/login/verify-otp", controllers.VerifyLoginOTP()).Methods("POST")
	router.HandleFunc("/user/forgot-password", controllers.ForgotPassword()).Methods("POST")
	router.HandleFunc("/user/reset-password", controllers.ResetPassword()).Methods("POST")

	// User account
	router.Handle("/user/me", middleware.OptionalAuth(controllers.GetMe())).Methods("GET")
	router.Handle("/user/profile", middleware.UserAuth(controllers.GetUserDashboard())).Methods("GET")
	router.Handle("/user/profile", middleware.UserAuth(controllers.UpdateUserDashboard())).Methods("PUT")
	router.Handle("/user/dashboard", middleware.UserAuth(controllers.GetUserDashboard())).Methods("GET")
	router.Handle("/user/dashboard", middleware.UserAuth(controllers.UpdateUserDashboard())).Methods("PUT")

	// Favorites
	router.Handle("/user/favorites", middleware.UserAuth(controllers.GetFavorites())).Methods("GET")
	router.Handle("/user/favorites", middleware.UserAuth(controllers.ToggleFavorite())).Methods("POST")
	router.Handle("/user/favorites", middleware.UserAuth(controllers.ClearFavorites())).Methods("DELETE")

	// Admin
	router.HandleFunc("/admin/signup", controllers.SignupAdmin()).Methods("POST")
	router.HandleFunc("/admin/login", controllers.LoginAdmin()).Methods("POST")
	router.Handle("/admin/profile", middleware.AdminAuth(controllers.GetAdminProfile())).Methods("GET")

	// Quotes
	router.Handle("/quotes", middleware.OptionalAuth(controllers.CreateQuote())).Methods("POST")
	router.Handle("/quotes", middleware.AdminAuth(controllers.GetAllQuotes())).Methods("GET")
	router.Handle("/quotes/my", middleware.UserAuth(controllers.GetMyQuotes())).Methods("GET")
	router.Handle("/quotes/{id}", middleware.UserAuth(controllers.GetQuoteByID())).Methods("GET")
	router.Handle("/quotes/{id}", middleware.UserAuth(controllers.DeleteQuoteByID())).Methods("DELETE")

	// CMS pages
	router.HandleFunc("/pages", controllers.GetPages()).Methods("GET")
	router.HandleFunc("/pages", controllers.CreatePage()).Methods("POST")
	router.HandleFunc("/pages/id/{id}", controllers.GetPageByID()).Methods("GET")
	router.HandleFunc("/pages/{id}", controllers.UpdatePage()).Methods("PUT")
	router.HandleFunc("/pages/{id}", controllers.DeletePage()).Methods("DELETE")
	router.HandleFunc("/pages/{slug}", controllers.GetPageBySlug()).Methods("GET")
}
