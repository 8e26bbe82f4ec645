// README: Geocoding lookup contract shared by the Nominatim and Google backends.
package geocode

import (
	"context"

	"tripzy/internal/trip"
)

// Client resolves a free-text place name to its single best match. A nil
// destination with a nil error means the service answered but found nothing;
// errors are reserved for transport and protocol failures.
type Client interface {
	Lookup(ctx context.Context, query string) (*trip.Destination, error)
}
