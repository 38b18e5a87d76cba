package controllers

import (
	"net/url"
	"strconv"

	"property-catalogue/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage  = 1
	defaultLimit = 9
)

var categoricalFields = []string{
	"city", "propertyType", "bhkType", "furnishing", "status", "transactionType",
}

// buildPropertyQuery translates the search query string into a Mongo filter
// plus pagination. Parsing is forgiving: malformed numeric values are dropped
// rather than rejected, and the radius constraint only applies when lat, lng
// and radius are all present and valid.
func buildPropertyQuery(query url.Values) (bson.M, int64, int64) {
	filter := bson.M{}

	if search := query.Get("search"); search != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{Pattern: search, Options: "i"}}
	}

	for _, field := range categoricalFields {
		if v := query.Get(field); v != "" {
			filter[field] = v
		}
	}

	price := bson.M{}
	if v, ok := parseFloatParam(query, "priceMin"); ok {
		price["$gte"] = v
	}
	if v, ok := parseFloatParam(query, "priceMax"); ok {
		price["$lte"] = v
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	lat, latOK := parseFloatParam(query, "lat")
	lng, lngOK := parseFloatParam(query, "lng")
	radius, radiusOK := parseFloatParam(query, "radius")
	if latOK && lngOK && radiusOK {
		filter["location"] = utils.WithinFilter(lat, lng, radius)
	}

	page := parsePositiveInt(query.Get("page"), defaultPage)
	limit := parsePositiveInt(query.Get("limit"), defaultLimit)

	return filter, page, limit
}

func parseFloatParam(query url.Values, key string) (float64, bool) {
	raw := query.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parsePositiveInt(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
