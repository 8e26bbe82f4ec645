// README: Deterministic prompt construction for the completion endpoint.
package trip

import (
	"fmt"
	"strings"
)

// promptTemplate pins the instruction block the completion endpoint is
// asked to satisfy. The schema sample must stay in sync with the parser's
// expected shape.
const promptTemplate = `You are a travel assistant API.
Generate a JSON itinerary for:
Destinations: %s
Dates: %s to %s
Travelers: %d
Budget: %s
Vibe: %s
Interests: %s

Return ONLY valid JSON matching this schema exactly. Do not wrap in markdown blocks.
{
  "overview": "Brief trip summary",
  "days": [
    {
      "day": 1,
      "title": "Day Title",
      "summary": "Day summary",
      "highlights": ["Place 1", "Place 2"],
      "dining": ["Restaurant 1"],
      "stay": "Hotel Name"
    }
  ],
  "essentials": ["Item 1"],
  "packing": ["Item 1"]
}`

// BuildItineraryPrompt renders preferences into the instruction string sent
// to the completion endpoint. Pure: identical input yields byte-identical
// output.
func BuildItineraryPrompt(prefs Preferences) string {
	lines := make([]string, 0, len(prefs.Destinations))
	for i, dest := range prefs.Destinations {
		lines = append(lines, fmt.Sprintf("%d. %s, %s", i+1, dest.Label, dest.Country))
	}

	return fmt.Sprintf(promptTemplate,
		strings.Join(lines, "\n"),
		prefs.StartDate,
		prefs.EndDate,
		prefs.Travelers,
		prefs.Budget,
		prefs.Style,
		strings.Join(prefs.Interests, ", "),
	)
}
