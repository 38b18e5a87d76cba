package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestApprovedRatingExprAveragesApprovedOnly(t *testing.T) {
	expr := approvedRatingExpr()

	let, ok := expr["$let"].(bson.M)
	require.True(t, ok)

	vars, ok := let["vars"].(bson.M)
	require.True(t, ok)
	filterExpr, ok := vars["approvedReviews"].(bson.M)
	require.True(t, ok)
	filter, ok := filterExpr["$filter"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "$$r.approved", filter["cond"])

	// Missing reviews arrays must behave as empty, not error the pipeline.
	input, ok := filter["input"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, input, "$ifNull")

	in, ok := let["in"].(bson.M)
	require.True(t, ok)
	cond, ok := in["$cond"].(bson.A)
	require.True(t, ok)
	require.Len(t, cond, 3)

	avg, ok := cond[1].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "$$approvedReviews.rating", avg["$avg"])

	// Zero approved reviews yields 0, never null or NaN.
	assert.Equal(t, 0, cond[2])
}
