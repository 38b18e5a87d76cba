package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"property-catalogue/config"
	"property-catalogue/models"
	"property-catalogue/utils"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxImagesPerProperty = 10

var errTooManyImages = errors.New("too many images")

type PropertyListResponse struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
	Page       int64             `json:"page"`
	TotalPages int64             `json:"totalPages"`
}

func GetProperties(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		cacheKey := generateCacheKey(query)

		cachedData, err := redisClient.Get(r.Context(), cacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedData))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", cacheKey, err)
		}

		filter, page, limit := buildPropertyQuery(query)

		total, err := config.PropertyCollection.CountDocuments(r.Context(), filter)
		if err != nil {
			log.Printf("Error counting properties with filter %+v: %v", filter, err)
			writeError(w, http.StatusInternalServerError, "Server Error", err)
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := config.PropertyCollection.Find(r.Context(), filter, findOptions)
		if err != nil {
			log.Printf("Error fetching properties with filter %+v: %v", filter, err)
			writeError(w, http.StatusInternalServerError, "Server Error", err)
			return
		}
		defer cursor.Close(r.Context())

		properties := []models.Property{}
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding properties: %v", err)
			writeError(w, http.StatusInternalServerError, "Server Error", err)
			return
		}

		response := PropertyListResponse{
			Properties: properties,
			Total:      total,
			Page:       page,
			TotalPages: int64(math.Ceil(float64(total) / float64(limit))),
		}

		resultBytes, err := json.Marshal(response)
		if err != nil {
			log.Printf("Failed to serialize properties: %v", err)
			writeError(w, http.StatusInternalServerError, "Server Error", err)
			return
		}

		if err := redisClient.Set(r.Context(), cacheKey, resultBytes, 10*time.Minute).Err(); err != nil {
			log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

func GetPropertyByID() http.HandlerFunc {
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
			log.Printf("Error fetching property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Server Error", err)
			return
		}

		writeJSON(w, http.StatusOK, property)
	}
}

func CreateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		title := r.FormValue("title")
		city := r.FormValue("city")
		priceStr := r.FormValue("price")
		if title == "" || city == "" || priceStr == "" {
			writeMessage(w, http.StatusBadRequest, "Title, price and city are required")
			return
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Price must be a number")
			return
		}

		images, err := uploadImages(r.Context(), r.MultipartForm)
		if errors.Is(err, errTooManyImages) {
			writeMessage(w, http.StatusBadRequest, "A maximum of 10 images is allowed")
			return
		}
		if err != nil {
			log.Printf("Image upload failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create property", err)
			return
		}

		activeStatus := r.FormValue("activeStatus")
		if activeStatus == "" {
			activeStatus = "Draft"
		}

		now := time.Now()
		property := models.Property{
			ID:               primitive.NewObjectID(),
			Title:            title,
			Description:      r.FormValue("description"),
			Price:            price,
			City:             city,
			Address:          r.FormValue("address"),
			PropertyType:     r.FormValue("propertyType"),
			BhkType:          r.FormValue("bhkType"),
			Furnishing:       r.FormValue("furnishing"),
			Bedrooms:         parseIntField(r.FormValue("bedrooms")),
			Bathrooms:        parseIntField(r.FormValue("bathrooms")),
			SuperBuiltupArea: r.FormValue("superBuiltupArea"),
			Developer:        r.FormValue("developer"),
			Project:          r.FormValue("project"),
			TransactionType:  r.FormValue("transactionType"),
			Status:           r.FormValue("status"),
			ReraID:           r.FormValue("reraId"),
			Images:           images,
			Amenities:        utils.NormalizeAmenities(r.MultipartForm.Value["amenities"]),
			ActiveStatus:     activeStatus,
			Reviews:          []models.Review{},
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		property.Location = resolveLocation(r.Context(), r.FormValue("lat"), r.FormValue("lng"), property.Address)

		if _, err := config.PropertyCollection.InsertOne(r.Context(), property); err != nil {
			log.Printf("Insert failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create property", err)
			return
		}

		go deletePropertyCache(redisClient)

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message":  "Property created!",
			"property": property,
		})
	}
}

func UpdateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		var property models.Property
		err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Update failed", err)
			return
		}

		removedImgs := parseImageList(r.FormValue("removedImages"))
		for _, img := range removedImgs {
			utils.DestroyImage(r.Context(), img)
		}

		removed := make(map[string]bool, len(removedImgs))
		for _, img := range removedImgs {
			removed[img] = true
		}
		updatedImages := []string{}
		for _, img := range property.Images {
			if !removed[img] {
				updatedImages = append(updatedImages, img)
			}
		}

		newImages, err := uploadImages(r.Context(), r.MultipartForm)
		if errors.Is(err, errTooManyImages) {
			writeMessage(w, http.StatusBadRequest, "A maximum of 10 images is allowed")
			return
		}
		if err != nil {
			log.Printf("Image upload failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Update failed", err)
			return
		}
		updatedImages = append(updatedImages, newImages...)

		update := bson.M{
			"images":    updatedImages,
			"updatedAt": time.Now(),
		}

		setStringField(update, r, "title")
		setStringField(update, r, "description")
		setStringField(update, r, "city")
		setStringField(update, r, "address")
		setStringField(update, r, "propertyType")
		setStringField(update, r, "bhkType")
		setStringField(update, r, "furnishing")
		setStringField(update, r, "superBuiltupArea")
		setStringField(update, r, "developer")
		setStringField(update, r, "project")
		setStringField(update, r, "transactionType")
		setStringField(update, r, "status")
		setStringField(update, r, "reraId")
		setStringField(update, r, "activeStatus")

		if v := r.FormValue("price"); v != "" {
			if price, err := strconv.ParseFloat(v, 64); err == nil {
				update["price"] = price
			}
		}
		if v := r.FormValue("bedrooms"); v != "" {
			update["bedrooms"] = parseIntField(v)
		}
		if v := r.FormValue("bathrooms"); v != "" {
			update["bathrooms"] = parseIntField(v)
		}
		if _, ok := r.MultipartForm.Value["amenities"]; ok {
			update["amenities"] = utils.NormalizeAmenities(r.MultipartForm.Value["amenities"])
		}

		// Location only changes when the request itself carries coordinates
		// or an address; otherwise the stored point stays as-is.
		if location := resolveLocation(r.Context(), r.FormValue("lat"), r.FormValue("lng"), r.FormValue("address")); location != nil {
			update["location"] = location
		}

		var updated models.Property
		err = config.PropertyCollection.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": objID},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			log.Printf("Update failed for property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Update failed", err)
			return
		}

		go deletePropertyCache(redisClient)

		writeJSON(w, http.StatusOK, updated)
	}
}

func DuplicateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var original models.Property
		err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&original)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Failed to duplicate property", err)
			return
		}

		duplicate := original
		duplicate.ID = primitive.NewObjectID()
		title := original.Title
		if title == "" {
			title = "Property"
		}
		duplicate.Title = title + " (Copy)"
		now := time.Now()
		duplicate.CreatedAt = now
		duplicate.UpdatedAt = now

		if _, err := config.PropertyCollection.InsertOne(r.Context(), duplicate); err != nil {
			log.Printf("Duplicate insert failed for property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Failed to duplicate property", err)
			return
		}

		go deletePropertyCache(redisClient)

		writeJSON(w, http.StatusCreated, duplicate)
	}
}

func DeleteProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var deleted models.Property
		err = config.PropertyCollection.FindOneAndDelete(r.Context(), bson.M{"_id": objID}).Decode(&deleted)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		if err != nil {
			log.Printf("Delete failed for property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Delete failed", err)
			return
		}

		// Every image delete is attempted even if some fail.
		for _, img := range deleted.Images {
			utils.DestroyImage(r.Context(), img)
		}

		go deletePropertyCache(redisClient)

		writeMessage(w, http.StatusOK, "Property deleted successfully")
	}
}

func GetRelatedProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var current models.Property
		err = config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&current)
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Error fetching related properties", err)
			return
		}

		filter := bson.M{
			"_id":  bson.M{"$ne": current.ID},
			"city": current.City,
		}
		cursor, err := config.PropertyCollection.Find(r.Context(), filter, options.Find().SetLimit(3))
		if err != nil {
			log.Printf("Error fetching related properties for %s: %v", objID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Error fetching related properties", err)
			return
		}
		defer cursor.Close(r.Context())

		related := []models.Property{}
		if err := cursor.All(r.Context(), &related); err != nil {
			log.Printf("Error decoding related properties: %v", err)
			writeError(w, http.StatusInternalServerError, "Error fetching related properties", err)
			return
		}

		writeJSON(w, http.StatusOK, related)
	}
}

func CompareProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := []primitive.ObjectID{}
		for _, raw := range strings.Split(r.URL.Query().Get("ids"), ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			objID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				continue
			}
			ids = append(ids, objID)
		}
		if len(ids) == 0 {
			writeMessage(w, http.StatusBadRequest, "Please provide property IDs in ?ids=...")
			return
		}

		cursor, err := config.PropertyCollection.Find(r.Context(), bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			log.Printf("Error fetching properties for comparison: %v", err)
			writeError(w, http.StatusInternalServerError, "Server Error", err)
			return
		}
		defer cursor.Close(r.Context())

		properties := []models.Property{}
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding properties for comparison: %v", err)
			writeError(w, http.StatusInternalServerError, "Server Error", err)
			return
		}

		writeJSON(w, http.StatusOK, properties)
	}
}

type nearbyRequest struct {
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	MaxDistance *float64 `json:"maxDistance"`
	Limit       *int64   `json:"limit"`
}

func GetNearbyProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nearbyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Lat == nil || req.Lng == nil {
			writeMessage(w, http.StatusBadRequest, "Latitude and Longitude required")
			return
		}

		maxDistance := 10000.0
		if req.MaxDistance != nil && *req.MaxDistance > 0 {
			maxDistance = *req.MaxDistance
		}
		limit := int64(20)
		if req.Limit != nil && *req.Limit > 0 {
			limit = *req.Limit
		}

		pipeline := utils.NearestPipeline(*req.Lat, *req.Lng, maxDistance, limit)
		cursor, err := config.PropertyCollection.Aggregate(r.Context(), pipeline)
		if err != nil {
			log.Printf("Nearby search error: %v", err)
			writeError(w, http.StatusInternalServerError, "Error fetching nearby properties", err)
			return
		}
		defer cursor.Close(r.Context())

		properties := []models.Property{}
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding nearby properties: %v", err)
			writeError(w, http.StatusInternalServerError, "Error fetching nearby properties", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":      len(properties),
			"properties": properties,
		})
	}
}

func GeocodeAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get("address")
		if address == "" {
			writeMessage(w, http.StatusBadRequest, "Address is required")
			return
		}

		coords, err := utils.GeocodeAddress(r.Context(), address)
		if err != nil {
			log.Printf("Geocode error: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}
		if len(coords) != 2 {
			writeMessage(w, http.StatusNotFound, "Could not geocode address")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"coordinates": coords})
	}
}

func uploadImages(ctx context.Context, form *multipart.Form) ([]string, error) {
	urls := []string{}
	if form == nil {
		return urls, nil
	}
	files := form.File["images"]
	if len(files) > maxImagesPerProperty {
		return nil, errTooManyImages
	}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return urls, err
		}
		u, err := utils.UploadImage(ctx, f)
		f.Close()
		if err != nil {
			return urls, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// resolveLocation prefers explicit coordinates and falls back to geocoding
// the address. Geocode failures are logged, never fatal.
func resolveLocation(ctx context.Context, latStr, lngStr, address string) *models.GeoPoint {
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat == nil && errLng == nil {
			return models.NewGeoPoint(lng, lat)
		}
	}
	if latStr == "" && lngStr == "" && address != "" {
		coords, err := utils.GeocodeAddress(ctx, address)
		if err != nil {
			log.Printf("Geocode failed for %q: %v", address, err)
			return nil
		}
		if len(coords) == 2 {
			return models.NewGeoPoint(coords[0], coords[1])
		}
	}
	return nil
}

func parseImageList(raw string) []string {
	if raw == "" {
		return nil
	}
	var imgs []string
	if err := json.Unmarshal([]byte(raw), &imgs); err != nil {
		log.Printf("Could not parse image list %q: %v", raw, err)
		return nil
	}
	return imgs
}

func setStringField(update bson.M, r *http.Request, field string) {
	if _, ok := r.MultipartForm.Value[field]; ok {
		update[field] = r.FormValue(field)
	}
}

func parseIntField(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func generateCacheKey(queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return "properties:" + hex.EncodeToString(sum[:])
}

func deletePropertyCache(redisClient *redis.Client) {
	ctx := context.Background()
	const scanPattern = "properties:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, execErr := pipe.Exec(ctx); execErr != nil {
		log.Printf("Error deleting %d property cache keys: %v", len(keysToDelete), execErr)
	}
}
