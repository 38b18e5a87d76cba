package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildPropertyQueryDefaults(t *testing.T) {
	filter, page, limit := buildPropertyQuery(url.Values{})

	assert.Empty(t, filter)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(9), limit)
}

func TestBuildPropertyQuerySearchAndCategoricals(t *testing.T) {
	query := url.Values{}
	query.Set("search", "lake view")
	query.Set("city", "Jaipur")
	query.Set("propertyType", "Villa")
	query.Set("bhkType", "3 BHK")
	query.Set("furnishing", "Furnished")
	query.Set("status", "Ready to Move")
	query.Set("transactionType", "Resale")

	filter, _, _ := buildPropertyQuery(query)

	title, ok := filter["title"].(bson.M)
	require.True(t, ok)
	regex, ok := title["$regex"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "lake view", regex.Pattern)
	assert.Equal(t, "i", regex.Options)

	assert.Equal(t, "Jaipur", filter["city"])
	assert.Equal(t, "Villa", filter["propertyType"])
	assert.Equal(t, "3 BHK", filter["bhkType"])
	assert.Equal(t, "Furnished", filter["furnishing"])
	assert.Equal(t, "Ready to Move", filter["status"])
	assert.Equal(t, "Resale", filter["transactionType"])
}

func TestBuildPropertyQueryPriceRange(t *testing.T) {
	query := url.Values{}
	query.Set("priceMin", "400000")
	query.Set("priceMax", "600000")

	filter, _, _ := buildPropertyQuery(query)

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 400000.0, price["$gte"])
	assert.Equal(t, 600000.0, price["$lte"])
}

func TestBuildPropertyQueryPriceBoundsIndependent(t *testing.T) {
	query := url.Values{}
	query.Set("priceMin", "250000")

	filter, _, _ := buildPropertyQuery(query)

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 250000.0, price["$gte"])
	assert.NotContains(t, price, "$lte")
}

func TestBuildPropertyQueryMalformedPriceIgnored(t *testing.T) {
	query := url.Values{}
	query.Set("priceMin", "cheap")
	query.Set("priceMax", "500000")

	filter, _, _ := buildPropertyQuery(query)

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.NotContains(t, price, "$gte")
	assert.Equal(t, 500000.0, price["$lte"])
}

func TestBuildPropertyQueryRadiusFilter(t *testing.T) {
	query := url.Values{}
	query.Set("lat", "26.9124")
	query.Set("lng", "75.7873")
	query.Set("radius", "3963.2")

	filter, _, _ := buildPropertyQuery(query)

	location, ok := filter["location"].(bson.M)
	require.True(t, ok)
	geoWithin, ok := location["$geoWithin"].(bson.M)
	require.True(t, ok)
	centerSphere, ok := geoWithin["$centerSphere"].(bson.A)
	require.True(t, ok)
	require.Len(t, centerSphere, 2)

	center, ok := centerSphere[0].(bson.A)
	require.True(t, ok)
	assert.Equal(t, 75.7873, center[0])
	assert.Equal(t, 26.9124, center[1])
	assert.InDelta(t, 1.0, centerSphere[1].(float64), 1e-9)
}

func TestBuildPropertyQueryPartialGeoDisablesRadius(t *testing.T) {
	for _, missing := range []string{"lat", "lng", "radius"} {
		query := url.Values{}
		query.Set("lat", "26.9")
		query.Set("lng", "75.8")
		query.Set("radius", "5")
		query.Del(missing)

		filter, _, _ := buildPropertyQuery(query)
		assert.NotContains(t, filter, "location", "missing %s should disable the radius filter", missing)
	}
}

func TestBuildPropertyQueryMalformedGeoDisablesRadius(t *testing.T) {
	query := url.Values{}
	query.Set("lat", "26.9")
	query.Set("lng", "not-a-number")
	query.Set("radius", "5")

	filter, _, _ := buildPropertyQuery(query)
	assert.NotContains(t, filter, "location")
}

func TestBuildPropertyQueryPagination(t *testing.T) {
	query := url.Values{}
	query.Set("page", "3")
	query.Set("limit", "20")

	_, page, limit := buildPropertyQuery(query)
	assert.Equal(t, int64(3), page)
	assert.Equal(t, int64(20), limit)
}

func TestBuildPropertyQueryPaginationFallbacks(t *testing.T) {
	query := url.Values{}
	query.Set("page", "zero")
	query.Set("limit", "-5")

	_, page, limit := buildPropertyQuery(query)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(9), limit)
}
