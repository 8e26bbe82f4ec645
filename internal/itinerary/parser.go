// README: Lenient itinerary parser for noisy completion-endpoint output.
package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"tripzy/internal/trip"
)

// FailureKind classifies why a raw payload could not become an itinerary.
type FailureKind string

const (
	// KindMalformedPayload means no JSON object could be located in the text.
	KindMalformedPayload FailureKind = "malformed_payload"
	// KindInvalidJSON means an object was located but does not decode.
	KindInvalidJSON FailureKind = "invalid_json"
	// KindSchemaViolation means the object decoded but misses required fields.
	KindSchemaViolation FailureKind = "schema_violation"
)

// ParseError is the typed failure returned by Parse. Field carries the
// offending field path for schema violations.
type ParseError struct {
	Kind  FailureKind
	Field string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("itinerary %s at %q: %s", e.Kind, e.Field, e.Msg)
	}
	return fmt.Sprintf("itinerary %s: %s", e.Kind, e.Msg)
}

// objectEntry preserves document order, which Go maps do not. The wrapper
// recovery step must pick the first candidate in document order.
type objectEntry struct {
	key   string
	value json.RawMessage
}

// Parse recovers a validated itinerary from raw completion text. The text
// may carry surrounding prose, code fences, or one level of unexpected
// wrapping around the itinerary object. The input is never mutated; callers
// keep the raw text for diagnostics.
func Parse(raw string) (*trip.Itinerary, error) {
	trimmed := strings.TrimSpace(raw)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &ParseError{Kind: KindMalformedPayload, Msg: "no JSON object found"}
	}

	payload := []byte(trimmed[start : end+1])
	entries, err := decodeObject(payload)
	if err != nil {
		return nil, &ParseError{Kind: KindInvalidJSON, Msg: err.Error()}
	}

	// Wrapper recovery: when the model nests the itinerary under an
	// unexpected key, adopt the first property value (in document order)
	// that itself carries both overview and days. One level only.
	if !hasKey(entries, "overview") && !hasKey(entries, "days") {
		for _, entry := range entries {
			nested, err := decodeObject(entry.value)
			if err != nil {
				continue
			}
			if hasKey(nested, "overview") && hasKey(nested, "days") {
				payload = entry.value
				break
			}
		}
	}

	return validate(payload)
}

// decodeObject strictly decodes payload as a single JSON object, keeping
// the top-level properties in document order.
func decodeObject(payload []byte) ([]objectEntry, error) {
	dec := json.NewDecoder(strings.NewReader(string(payload)))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("not a JSON object")
	}

	var entries []objectEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("object key is not a string")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, objectEntry{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after object")
	}
	return entries, nil
}

func hasKey(entries []objectEntry, key string) bool {
	for _, entry := range entries {
		if entry.key == key {
			return true
		}
	}
	return false
}

// dayDoc and itineraryDoc use pointers so absent required fields are
// distinguishable from zero values.
type dayDoc struct {
	Day        *json.Number `json:"day"`
	Title      *string      `json:"title"`
	Summary    *string      `json:"summary"`
	Highlights []string     `json:"highlights"`
	Dining     []string     `json:"dining"`
	Stay       *string      `json:"stay"`
}

type itineraryDoc struct {
	Overview   *string  `json:"overview"`
	Days       []dayDoc `json:"days"`
	Essentials []string `json:"essentials"`
	Packing    []string `json:"packing"`
}

func validate(payload []byte) (*trip.Itinerary, error) {
	var doc itineraryDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ParseError{
				Kind:  KindSchemaViolation,
				Field: typeErr.Field,
				Msg:   fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return nil, &ParseError{Kind: KindSchemaViolation, Msg: err.Error()}
	}

	if doc.Overview == nil {
		return nil, &ParseError{Kind: KindSchemaViolation, Field: "overview", Msg: "required string missing"}
	}
	if doc.Days == nil {
		return nil, &ParseError{Kind: KindSchemaViolation, Field: "days", Msg: "required array missing"}
	}
	if len(doc.Days) == 0 {
		return nil, &ParseError{Kind: KindSchemaViolation, Field: "days", Msg: "must contain at least one day"}
	}

	result := &trip.Itinerary{
		Overview:   *doc.Overview,
		Days:       make([]trip.ItineraryDay, 0, len(doc.Days)),
		Essentials: orEmpty(doc.Essentials),
		Packing:    orEmpty(doc.Packing),
	}

	for i, day := range doc.Days {
		if day.Day == nil {
			return nil, &ParseError{Kind: KindSchemaViolation, Field: fmt.Sprintf("days[%d].day", i), Msg: "required number missing"}
		}
		if day.Title == nil {
			return nil, &ParseError{Kind: KindSchemaViolation, Field: fmt.Sprintf("days[%d].title", i), Msg: "required string missing"}
		}
		if day.Summary == nil {
			return nil, &ParseError{Kind: KindSchemaViolation, Field: fmt.Sprintf("days[%d].summary", i), Msg: "required string missing"}
		}
		number, err := day.Day.Float64()
		if err != nil {
			return nil, &ParseError{Kind: KindSchemaViolation, Field: fmt.Sprintf("days[%d].day", i), Msg: "not a number"}
		}

		out := trip.ItineraryDay{
			Day:        int(number),
			Title:      *day.Title,
			Summary:    *day.Summary,
			Highlights: orEmpty(day.Highlights),
			Dining:     orEmpty(day.Dining),
		}
		if day.Stay != nil {
			out.Stay = *day.Stay
		}
		result.Days = append(result.Days, out)
	}

	return result, nil
}

// orEmpty fills the parser's default for absent collections.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
