package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsDuplicateEmail(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	assert.True(t, isDuplicateEmail(dup))

	other := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 2}}}
	assert.False(t, isDuplicateEmail(other))
	assert.False(t, isDuplicateEmail(errors.New("connection reset")))
}
