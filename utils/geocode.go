package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

var geocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

var geocodeClient = &http.Client{Timeout: 10 * time.Second}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// GeocodeAddress resolves a postal address to [lng, lat] via the Google
// Geocoding API. Returns nil, nil when the address is empty, no API key is
// configured, or nothing matched.
func GeocodeAddress(ctx context.Context, address string) ([]float64, error) {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if address == "" || apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, geocodeBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := geocodeClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if len(body.Results) == 0 {
		return nil, nil
	}

	loc := body.Results[0].Geometry.Location
	return []float64{loc.Lng, loc.Lat}, nil
}
