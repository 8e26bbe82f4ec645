// README: Trip domain types (destinations, preferences, itineraries) and validation.
package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPreferences is the sentinel for all preference validation failures.
var ErrInvalidPreferences = errors.New("invalid trip preferences")

type Budget string

const (
	BudgetValue    Budget = "value"
	BudgetBalanced Budget = "balanced"
	BudgetPremium  Budget = "premium"
)

type Style string

const (
	StyleRelax     Style = "relax"
	StyleAdventure Style = "adventure"
	StyleCulture   Style = "culture"
	StyleRomance   Style = "romance"
	StyleFamily    Style = "family"
)

// Destination is a geocoded place. ID is the lookup service's stable
// identifier, falling back to the original query text when the service
// provides none.
type Destination struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Country   string  `json:"country,omitempty"`
}

// Preferences is the fully-resolved input to itinerary generation.
// Destinations holds only successfully resolved entries; unresolved
// queries are dropped upstream, never carried as placeholders.
type Preferences struct {
	Destinations []Destination `json:"destinations"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Travelers    int           `json:"travelers"`
	Budget       Budget        `json:"budget"`
	Style        Style         `json:"style"`
	Interests    []string      `json:"interests"`
	Notes        string        `json:"notes,omitempty"`
}

type ItineraryDay struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Dining     []string `json:"dining"`
	Stay       string   `json:"stay,omitempty"`
}

// Itinerary is only ever produced by the parser from validated input;
// all list fields are present (possibly empty), never nil.
type Itinerary struct {
	Overview   string         `json:"overview"`
	Days       []ItineraryDay `json:"days"`
	Essentials []string       `json:"essentials"`
	Packing    []string       `json:"packing"`
}

const isoDate = "2006-01-02"

var validBudgets = map[Budget]bool{
	BudgetValue:    true,
	BudgetBalanced: true,
	BudgetPremium:  true,
}

var validStyles = map[Style]bool{
	StyleRelax:     true,
	StyleAdventure: true,
	StyleCulture:   true,
	StyleRomance:   true,
	StyleFamily:    true,
}

// Validate checks that the preferences are complete enough to generate from.
func (p Preferences) Validate() error {
	if len(p.Destinations) == 0 {
		return fmt.Errorf("%w: destinations must not be empty", ErrInvalidPreferences)
	}
	start, err := time.Parse(isoDate, p.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date must be an ISO date (YYYY-MM-DD)", ErrInvalidPreferences)
	}
	end, err := time.Parse(isoDate, p.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end_date must be an ISO date (YYYY-MM-DD)", ErrInvalidPreferences)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidPreferences)
	}
	if p.Travelers < 1 {
		return fmt.Errorf("%w: travelers must be at least 1", ErrInvalidPreferences)
	}
	if !validBudgets[p.Budget] {
		return fmt.Errorf("%w: unknown budget %q", ErrInvalidPreferences, p.Budget)
	}
	if !validStyles[p.Style] {
		return fmt.Errorf("%w: unknown style %q", ErrInvalidPreferences, p.Style)
	}
	if len(p.Interests) == 0 {
		return fmt.Errorf("%w: interests must not be empty", ErrInvalidPreferences)
	}
	for _, d := range p.Destinations {
		if strings.TrimSpace(d.Label) == "" {
			return fmt.Errorf("%w: destination label must not be blank", ErrInvalidPreferences)
		}
	}
	return nil
}
