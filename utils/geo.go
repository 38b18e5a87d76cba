package utils

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EarthRadiusMiles converts a linear radius to the angular radius MongoDB's
// $centerSphere expects.
const EarthRadiusMiles = 3963.2

// WithinFilter selects documents whose location lies inside a spherical cap
// of radiusMiles around (lat, lng). Membership only, no ordering.
func WithinFilter(lat, lng, radiusMiles float64) bson.M {
	return bson.M{
		"$geoWithin": bson.M{
			"$centerSphere": bson.A{
				bson.A{lng, lat},
				radiusMiles / EarthRadiusMiles,
			},
		},
	}
}

// NearestPipeline ranks documents by great-circle distance from (lat, lng),
// annotating each with a "distance" field in meters and truncating to limit.
// $geoNear must be the first stage and requires the 2dsphere index.
func NearestPipeline(lat, lng, maxDistanceMeters float64, limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.M{
			"near": bson.M{
				"type":        "Point",
				"coordinates": bson.A{lng, lat},
			},
			"distanceField": "distance",
			"maxDistance":   maxDistanceMeters,
			"spherical":     true,
		}}},
		{{Key: "$limit", Value: limit}},
	}
}
