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

	"github.com/s777ia/ShoreSquad/internal/config"
	"github.com/s777ia/ShoreSquad/internal/location"
	"github.com/s777ia/ShoreSquad/internal/server"
	"github.com/s777ia/ShoreSquad/internal/storage"
	"github.com/s777ia/ShoreSquad/internal/weather"
)

// Entry point. Wires the store, state, location resolver, weather service and
// HTTP server, then runs until a shutdown signal arrives.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.FromEnv()

	store, err := storage.NewSQLite(cfg.StorePath)
	if err != nil {
		log.Fatalf("could not open store: %v", err)
	}

	st := server.NewState(store, cfg.StoreKeys)
	st.LoadOrSeed(time.Now())

	source := location.NewClientSource()
	resolver := location.NewResolver(source, store, location.Options{
		Fallback: cfg.FallbackLocation,
		StoreKey: cfg.StoreKeys.UserLocation,
		Timeout:  cfg.LocationTimeout,
		TTL:      cfg.LocationTTL,
	})

	wsvc := weather.NewService(weather.NewClient(cfg))
	srv := server.NewServer(st, resolver, source, wsvc)

	// Keep the weather panel fresh and push updates to connected clients.
	refresher := weather.NewRefresher(wsvc, cfg.RefreshInterval, func(b weather.Bundle) {
		st.SetWeather(b)
		srv.BroadcastWeather(b)
	})
	refresher.Start()

	addr := ":" + cfg.Port
	s := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Signals for an orderly shutdown.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("server started on http://localhost%v", addr)
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("error in ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("shutdown: signal received, starting orderly shutdown...")

	// 1) Stop accepting new connections.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Printf("error during server.Shutdown: %v", err)
	}

	// 2) Stop the refresher (waits for an in-flight fetch).
	refresher.Close()

	// 3) Close the store.
	if err := st.Close(); err != nil {
		log.Printf("warning: error closing store: %v", err)
	}

	log.Println("shutdown complete")
}
