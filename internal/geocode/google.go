package geocode

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"tripzy/internal/trip"
)

// GoogleClient resolves place names through the Google Geocoding API, as an
// alternative to Nominatim for deployments that already hold a Maps key.
type GoogleClient struct {
	client *maps.Client
}

func NewGoogleClient(apiKey string) (*GoogleClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google geocode: create client: %w", err)
	}
	return &GoogleClient{client: client}, nil
}

// Lookup fetches the single best match for query. No match is (nil, nil).
func (c *GoogleClient) Lookup(ctx context.Context, query string) (*trip.Destination, error) {
	results, err := c.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return nil, fmt.Errorf("google geocode: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	best := results[0]
	dest := &trip.Destination{
		ID:        best.PlaceID,
		Label:     best.FormattedAddress,
		Longitude: best.Geometry.Location.Lng,
		Latitude:  best.Geometry.Location.Lat,
	}
	if dest.ID == "" {
		dest.ID = query
	}
	if dest.Label == "" {
		dest.Label = query
	}
	dest.Country = countryOf(best.AddressComponents)
	return dest, nil
}

func countryOf(components []maps.AddressComponent) string {
	for _, comp := range components {
		for _, t := range comp.Types {
			if t != "country" {
				continue
			}
			if comp.LongName != "" {
				return comp.LongName
			}
			return strings.ToUpper(comp.ShortName)
		}
	}
	return ""
}
