package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmenitiesRepeatedValues(t *testing.T) {
	got := NormalizeAmenities([]string{"Gym", "Pool", "Parking"})
	assert.Equal(t, []string{"Gym", "Pool", "Parking"}, got)
}

func TestNormalizeAmenitiesJSONArrayString(t *testing.T) {
	got := NormalizeAmenities([]string{`["Gym", "Pool"]`})
	assert.Equal(t, []string{"Gym", "Pool"}, got)
}

func TestNormalizeAmenitiesDelimitedString(t *testing.T) {
	got := NormalizeAmenities([]string{"Gym, Pool , Parking"})
	assert.Equal(t, []string{"Gym", "Pool", "Parking"}, got)
}

func TestNormalizeAmenitiesScalar(t *testing.T) {
	got := NormalizeAmenities([]string{"Gym"})
	assert.Equal(t, []string{"Gym"}, got)
}

func TestNormalizeAmenitiesMalformedJSONKeptVerbatim(t *testing.T) {
	got := NormalizeAmenities([]string{`["Gym"`})
	assert.Equal(t, []string{`["Gym"`}, got)
}

func TestNormalizeAmenitiesEmptyInput(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeAmenities(nil))
	assert.Equal(t, []string{}, NormalizeAmenities([]string{"", "  "}))
}

func TestNormalizeAmenitiesMixedForms(t *testing.T) {
	got := NormalizeAmenities([]string{`["Gym","Pool"]`, "Parking, Garden", "Lift"})
	assert.Equal(t, []string{"Gym", "Pool", "Parking", "Garden", "Lift"}, got)
}
