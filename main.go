package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"flight-route-server/config"
	"flight-route-server/handlers"
	"flight-route-server/preprocessing"
	"flight-route-server/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Loading nodes for %s...", cfg.CountryCode)
	nodes, err := preprocessing.LoadNodesCached(ctx, cfg.NodeCachePath(), cfg.WaypointsPath(), cfg.AirportsPath(), cfg.CountryCode)
	if err != nil {
		log.Fatalf("Failed to load node data: %v", err)
	}

	// The graph is read-only from here on; every request shares it.
	graph, err := preprocessing.BuildGraph(nodes, cfg.MaxDistanceNM)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	routingService := services.NewRoutingService(graph)
	r := handlers.NewRouter(handlers.NewRoutingHandler(routingService))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Flight route server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}
