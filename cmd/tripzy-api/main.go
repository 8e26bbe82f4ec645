// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tripzy/internal/ai"
	"tripzy/internal/config"
	"tripzy/internal/geocode"
	httptransport "tripzy/internal/http"
	"tripzy/internal/infra"
	"tripzy/internal/planner"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, closeProvider, err := buildProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("ai provider init: %v", err)
	}
	defer closeProvider()

	client, err := buildGeocoder(cfg.Geocode)
	if err != nil {
		log.Fatalf("geocoder init: %v", err)
	}

	var cache geocode.Cache
	if cfg.Redis.Addr != "" {
		cache = geocode.NewRedisCache(infra.NewRedis(cfg.Redis.Addr), cfg.Geocode.CacheTTL)
	} else {
		cache = geocode.NewMemoryCache(cfg.Geocode.CacheTTL)
	}

	resolver := geocode.NewResolver(client, cache, cfg.Geocode.MinDelay)
	plannerSvc := planner.NewService(provider, cfg.AI.Timeout)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(plannerSvc, resolver),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("tripzy-api listening on %s (ai=%s, geocode=%s)", cfg.HTTP.Addr, cfg.AI.Provider, cfg.Geocode.Provider)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func buildProvider(ctx context.Context, cfg config.AIConfig) (ai.Provider, func(), error) {
	switch cfg.Provider {
	case "gemini":
		provider, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.Temperature)
		if err != nil {
			return nil, nil, err
		}
		return provider, provider.Close, nil
	default:
		provider := ai.NewOllamaProvider(cfg.OllamaURL, cfg.Model, cfg.Temperature, cfg.NumCtx)
		return provider, func() {}, nil
	}
}

func buildGeocoder(cfg config.GeocodeConfig) (geocode.Client, error) {
	switch cfg.Provider {
	case "google":
		return geocode.NewGoogleClient(cfg.GoogleKey)
	default:
		return geocode.NewNominatimClient(cfg.NominatimURL), nil
	}
}
