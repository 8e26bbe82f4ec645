// README: Sequential, rate-limited destination resolver.
package geocode

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tripzy/internal/trip"
)

// Resolver turns an ordered list of place-name queries into the ordered list
// of destinations that resolved. Queries run strictly one at a time with a
// minimum delay between outbound lookups; the external service's rate policy
// requires the spacing, it is not a convenience.
type Resolver struct {
	client  Client
	cache   Cache
	limiter *rate.Limiter
}

// NewResolver builds a resolver with the given minimum inter-query delay.
// cache may be nil. A zero delay disables spacing (tests).
func NewResolver(client Client, cache Cache, minDelay time.Duration) *Resolver {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if minDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(minDelay), 1)
	}
	return &Resolver{client: client, cache: cache, limiter: limiter}
}

// Resolve processes queries in order. Blank queries are filtered before
// querying; per-entry lookup failures and empty match sets are skipped
// without aborting the rest. The returned slice preserves the relative
// input order of the entries that resolved. An empty result is not an
// error here; "no destinations could be resolved" is the caller's message.
//
// The returned error is non-nil only when ctx ends the run early, and the
// destinations resolved up to that point are still returned.
func (r *Resolver) Resolve(ctx context.Context, queries []string) ([]trip.Destination, error) {
	var resolved []trip.Destination

	for _, raw := range queries {
		query := strings.TrimSpace(raw)
		if query == "" {
			continue
		}

		if r.cache != nil {
			if dest, ok := r.cache.Get(ctx, query); ok {
				resolved = append(resolved, *dest)
				continue
			}
		}

		// Waits out the spacing from the previous outbound lookup,
		// whether or not that lookup succeeded.
		if err := r.limiter.Wait(ctx); err != nil {
			return resolved, err
		}

		dest, err := r.client.Lookup(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return resolved, ctx.Err()
			}
			log.Printf("geocode: lookup %q failed: %v", query, err)
			continue
		}
		if dest == nil {
			log.Printf("geocode: no match for %q", query)
			continue
		}

		if r.cache != nil {
			r.cache.Set(ctx, query, *dest)
		}
		resolved = append(resolved, *dest)
	}

	return resolved, nil
}
