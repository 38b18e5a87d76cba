package controllers

import (
	"context"
	"mime/multipart"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCacheKeyIsOrderIndependent(t *testing.T) {
	a := url.Values{}
	a.Set("city", "Jaipur")
	a.Set("priceMin", "400000")

	b := url.Values{}
	b.Set("priceMin", "400000")
	b.Set("city", "Jaipur")

	assert.Equal(t, generateCacheKey(a), generateCacheKey(b))
}

func TestGenerateCacheKeyVariesWithQuery(t *testing.T) {
	a := url.Values{}
	a.Set("city", "Jaipur")

	b := url.Values{}
	b.Set("city", "Mumbai")

	assert.NotEqual(t, generateCacheKey(a), generateCacheKey(b))
	assert.Contains(t, generateCacheKey(a), "properties:")
}

func TestParseImageList(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, parseImageList(`["a.jpg","b.jpg"]`))
	assert.Nil(t, parseImageList(""))
	assert.Nil(t, parseImageList("not-json"))
}

func TestParseIntField(t *testing.T) {
	assert.Equal(t, 3, parseIntField("3"))
	assert.Equal(t, 0, parseIntField("three"))
	assert.Equal(t, 0, parseIntField(""))
}

func TestResolveLocationExplicitCoordinates(t *testing.T) {
	loc := resolveLocation(context.Background(), "26.9124", "75.7873", "")
	require.NotNil(t, loc)
	assert.Equal(t, []float64{75.7873, 26.9124}, loc.Coordinates)
}

func TestResolveLocationBlankFormLeavesLocationAlone(t *testing.T) {
	// An update that carries neither coordinates nor an address must not
	// resolve anything, so the stored point survives a partial edit.
	assert.Nil(t, resolveLocation(context.Background(), "", "", ""))
}

func TestResolveLocationPartialCoordinates(t *testing.T) {
	assert.Nil(t, resolveLocation(context.Background(), "26.9124", "", ""))
	assert.Nil(t, resolveLocation(context.Background(), "", "75.7873", ""))
}

func TestUploadImagesRejectsMoreThanLimit(t *testing.T) {
	form := &multipart.Form{File: map[string][]*multipart.FileHeader{
		"images": make([]*multipart.FileHeader, maxImagesPerProperty+1),
	}}

	_, err := uploadImages(context.Background(), form)
	assert.ErrorIs(t, err, errTooManyImages)
}

func TestUploadImagesNilForm(t *testing.T) {
	urls, err := uploadImages(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
}
