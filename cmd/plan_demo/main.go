// README: CLI walk of the full pipeline against live endpoints.
package main

import (
	"context"
	"fmt"
	"log"

	"tripzy/internal/ai"
	"tripzy/internal/config"
	"tripzy/internal/geocode"
	"tripzy/internal/planner"
	"tripzy/internal/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	resolver := geocode.NewResolver(
		geocode.NewNominatimClient(cfg.Geocode.NominatimURL),
		geocode.NewMemoryCache(cfg.Geocode.CacheTTL),
		cfg.Geocode.MinDelay,
	)

	queries := []string{"Tokyo", "Kyoto"}
	fmt.Printf("Resolving %v...\n", queries)
	destinations, err := resolver.Resolve(ctx, queries)
	if err != nil {
		log.Fatalf("geocode: %v", err)
	}
	if len(destinations) == 0 {
		log.Fatal("no destinations could be resolved")
	}
	for _, dest := range destinations {
		fmt.Printf("  %s (%f, %f) %s\n", dest.Label, dest.Longitude, dest.Latitude, dest.Country)
	}

	prefs := trip.Preferences{
		Destinations: destinations,
		StartDate:    "2026-10-01",
		EndDate:      "2026-10-07",
		Travelers:    2,
		Budget:       trip.BudgetBalanced,
		Style:        trip.StyleCulture,
		Interests:    []string{"food", "temples", "walking"},
	}

	provider := ai.NewOllamaProvider(cfg.AI.OllamaURL, cfg.AI.Model, cfg.AI.Temperature, cfg.AI.NumCtx)
	svc := planner.NewService(provider, cfg.AI.Timeout)
	sess := svc.CreateSession()

	fmt.Printf("Generating itinerary with %s (timeout %s)...\n", cfg.AI.Model, cfg.AI.Timeout)
	result, err := svc.Generate(ctx, sess, prefs)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	fmt.Printf("\nOverview: %s\n", result.Overview)
	for _, day := range result.Days {
		fmt.Printf("Day %d: %s — %s\n", day.Day, day.Title, day.Summary)
		for _, h := range day.Highlights {
			fmt.Printf("  * %s\n", h)
		}
	}
	fmt.Printf("Essentials: %v\nPacking: %v\n", result.Essentials, result.Packing)
}
