package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripzy/internal/trip"
)

// stubClient replays canned lookup outcomes and records the queries it saw.
type stubClient struct {
	matches map[string]*trip.Destination
	errs    map[string]error
	seen    []string
}

func (s *stubClient) Lookup(_ context.Context, query string) (*trip.Destination, error) {
	s.seen = append(s.seen, query)
	if err := s.errs[query]; err != nil {
		return nil, err
	}
	return s.matches[query], nil
}

func dest(id, label string) *trip.Destination {
	return &trip.Destination{ID: id, Label: label, Longitude: 1, Latitude: 2}
}

func TestResolve_DropsUnresolvedPreservesOrder(t *testing.T) {
	client := &stubClient{
		matches: map[string]*trip.Destination{
			"Tokyo": dest("t", "Tokyo, Japan"),
			"Kyoto": dest("k", "Kyoto, Japan"),
			// "Nowhere" yields no match.
		},
	}
	resolver := NewResolver(client, nil, 0)

	resolved, err := resolver.Resolve(context.Background(), []string{"Tokyo", "Nowhere", "Kyoto"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("resolved = %d entries, want 2", len(resolved))
	}
	if resolved[0].ID != "t" || resolved[1].ID != "k" {
		t.Errorf("order not preserved: %+v", resolved)
	}
}

func TestResolve_TransportErrorDoesNotAbort(t *testing.T) {
	client := &stubClient{
		matches: map[string]*trip.Destination{
			"Tokyo": dest("t", "Tokyo, Japan"),
			"Kyoto": dest("k", "Kyoto, Japan"),
		},
		errs: map[string]error{"Tokyo": errors.New("connection refused")},
	}
	resolver := NewResolver(client, nil, 0)

	resolved, err := resolver.Resolve(context.Background(), []string{"Tokyo", "Kyoto"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != "k" {
		t.Errorf("resolved = %+v, want only Kyoto", resolved)
	}
}

func TestResolve_BlankQueriesFilteredBeforeQuerying(t *testing.T) {
	client := &stubClient{matches: map[string]*trip.Destination{"Tokyo": dest("t", "Tokyo, Japan")}}
	resolver := NewResolver(client, nil, 0)

	resolved, err := resolver.Resolve(context.Background(), []string{"", "   ", "Tokyo", "\t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("resolved = %+v", resolved)
	}
	if len(client.seen) != 1 || client.seen[0] != "Tokyo" {
		t.Errorf("client saw %v, want only Tokyo", client.seen)
	}
}

func TestResolve_AllFailedIsEmptyNotError(t *testing.T) {
	client := &stubClient{errs: map[string]error{"a": errors.New("down"), "b": errors.New("down")}}
	resolver := NewResolver(client, nil, 0)

	resolved, err := resolver.Resolve(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("per-entry failures must not surface: %v", err)
	}
	if len(resolved) != 0 {
		t.Errorf("resolved = %+v, want none", resolved)
	}
}

func TestResolve_EnforcesInterQuerySpacing(t *testing.T) {
	const delay = 50 * time.Millisecond
	client := &stubClient{
		matches: map[string]*trip.Destination{
			"a": dest("a", "A"),
			"c": dest("c", "C"),
		},
		// "b" fails; the delay still applies before the next query.
		errs: map[string]error{"b": errors.New("down")},
	}
	resolver := NewResolver(client, nil, delay)

	start := time.Now()
	if _, err := resolver.Resolve(context.Background(), []string{"a", "b", "c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("3 queries took %s, want at least %s", elapsed, 2*delay)
	}
}

func TestResolve_CancellationKeepsPartialResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &stubClient{matches: map[string]*trip.Destination{
		"a": dest("a", "A"),
		"b": dest("b", "B"),
	}}
	resolver := NewResolver(client, nil, time.Hour)

	done := make(chan struct{})
	var resolved []trip.Destination
	var err error
	go func() {
		defer close(done)
		resolved, err = resolver.Resolve(ctx, []string{"a", "b"})
	}()

	// The first lookup runs immediately; the second parks on the limiter.
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(resolved) != 1 || resolved[0].ID != "a" {
		t.Errorf("resolved = %+v, want the first entry preserved", resolved)
	}
	if len(client.seen) != 1 {
		t.Errorf("client saw %v, want no further queries after cancel", client.seen)
	}
}

func TestResolve_CacheHitSkipsLookupAndDelay(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Stop()
	cache.Set(context.Background(), "Tokyo", *dest("t", "Tokyo, Japan"))

	client := &stubClient{}
	resolver := NewResolver(client, cache, time.Hour)

	start := time.Now()
	resolved, err := resolver.Resolve(context.Background(), []string{"Tokyo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != "t" {
		t.Fatalf("resolved = %+v", resolved)
	}
	if len(client.seen) != 0 {
		t.Errorf("client saw %v, want no lookups", client.seen)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cache hit waited %s on the limiter", elapsed)
	}
}

func TestResolve_PopulatesCache(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	defer cache.Stop()
	client := &stubClient{matches: map[string]*trip.Destination{"Tokyo": dest("t", "Tokyo, Japan")}}
	resolver := NewResolver(client, cache, 0)

	if _, err := resolver.Resolve(context.Background(), []string{"Tokyo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := cache.Get(context.Background(), "tokyo"); !ok || got.ID != "t" {
		t.Errorf("cache miss after resolve (got %+v, ok=%v)", got, ok)
	}
}
