package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tripzy/internal/trip"
)

const nominatimUserAgent = "Tripzy-Travel-Planner/1.0 (demo)"

// nominatimRecord is the subset of a Nominatim search hit we consume.
// Coordinates arrive as strings.
type nominatimRecord struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lon         string      `json:"lon"`
	Lat         string      `json:"lat"`
	Address     struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// NominatimClient resolves place names against a Nominatim search endpoint.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Lookup fetches the single best match for query. No match is (nil, nil).
func (c *NominatimClient) Lookup(ctx context.Context, query string) (*trip.Destination, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: build request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nominatim: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nominatim: api status %d", resp.StatusCode)
	}

	var records []nominatimRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("nominatim: unmarshal response: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return recordToDestination(records[0], query)
}

func recordToDestination(rec nominatimRecord, query string) (*trip.Destination, error) {
	lon, err := strconv.ParseFloat(rec.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: bad longitude %q: %w", rec.Lon, err)
	}
	lat, err := strconv.ParseFloat(rec.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: bad latitude %q: %w", rec.Lat, err)
	}

	dest := &trip.Destination{
		ID:        rec.PlaceID.String(),
		Label:     rec.DisplayName,
		Longitude: lon,
		Latitude:  lat,
	}
	if dest.ID == "" {
		dest.ID = query
	}
	if dest.Label == "" {
		dest.Label = query
	}
	switch {
	case rec.Address.Country != "":
		dest.Country = rec.Address.Country
	case rec.Address.CountryCode != "":
		dest.Country = strings.ToUpper(rec.Address.CountryCode)
	}
	return dest, nil
}
