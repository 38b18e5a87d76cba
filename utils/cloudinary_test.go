package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/v1700000000/property-images/abc123.jpg"
	assert.Equal(t, "property-images/abc123", PublicIDFromURL(url))
}

func TestPublicIDFromURLNoExtension(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/v1700000000/property-images/abc123"
	assert.Equal(t, "property-images/abc123", PublicIDFromURL(url))
}

func TestPublicIDFromURLEmptyTail(t *testing.T) {
	assert.Equal(t, "", PublicIDFromURL("https://res.cloudinary.com/demo/"))
	assert.Equal(t, "", PublicIDFromURL(""))
}
