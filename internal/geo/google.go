// Package geo adapts the Google Maps geocoding API for place-name lookups.
package geo

import (
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/billyblackk/forest-phenology-tracking-system/internal/phenology"
)

// GoogleGeocoder resolves a city/country pair to WGS84 coordinates.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the shared geocoder API key and returns an
// adapter. Geocoding requires a Google API key.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

// Geocode resolves the place to a validated Location.
func (g *GoogleGeocoder) Geocode(city, country string) (phenology.Location, error) {
	address := geocoder.Address{
		City:    city,
		Country: country,
	}

	loc, err := geocoder.Geocoding(address)
	if err != nil {
		return phenology.Location{}, fmt.Errorf("geocode %q: %w", city, err)
	}

	return phenology.NewLocation(loc.Latitude, loc.Longitude)
}
