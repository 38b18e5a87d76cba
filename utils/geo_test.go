package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestWithinFilterConvertsMilesToRadians(t *testing.T) {
	filter := WithinFilter(26.9124, 75.7873, 10)

	geoWithin, ok := filter["$geoWithin"].(bson.M)
	require.True(t, ok)
	centerSphere, ok := geoWithin["$centerSphere"].(bson.A)
	require.True(t, ok)
	require.Len(t, centerSphere, 2)

	center, ok := centerSphere[0].(bson.A)
	require.True(t, ok)
	assert.Equal(t, 75.7873, center[0], "longitude comes first in GeoJSON order")
	assert.Equal(t, 26.9124, center[1])

	assert.InDelta(t, 10/3963.2, centerSphere[1].(float64), 1e-12)
}

func TestNearestPipelineShape(t *testing.T) {
	pipeline := NearestPipeline(26.9124, 75.7873, 5000, 20)
	require.Len(t, pipeline, 2)

	geoNearStage := pipeline[0]
	require.Len(t, geoNearStage, 1)
	assert.Equal(t, "$geoNear", geoNearStage[0].Key)

	geoNear, ok := geoNearStage[0].Value.(bson.M)
	require.True(t, ok)
	assert.Equal(t, "distance", geoNear["distanceField"])
	assert.Equal(t, 5000.0, geoNear["maxDistance"])
	assert.Equal(t, true, geoNear["spherical"])

	near, ok := geoNear["near"].(bson.M)
	require.True(t, ok)
	coords, ok := near["coordinates"].(bson.A)
	require.True(t, ok)
	assert.Equal(t, 75.7873, coords[0])
	assert.Equal(t, 26.9124, coords[1])

	limitStage := pipeline[1]
	require.Len(t, limitStage, 1)
	assert.Equal(t, "$limit", limitStage[0].Key)
	assert.Equal(t, int64(20), limitStage[0].Value)
}
