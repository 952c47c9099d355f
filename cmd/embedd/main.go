package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tagnology/embed-go/internal/infrastructure/config"
	"github.com/tagnology/embed-go/internal/server"
)

func main() {
	port := flag.String("port", "", "Server port (overrides PORT)")
	endpoint := flag.String("endpoint", "", "Manifest endpoint (overrides EMBED_ENDPOINT)")
	platform := flag.String("platform", "", "Platform identifier (overrides EMBED_PLATFORM)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *endpoint != "" {
		cfg.Embed.Endpoint = *endpoint
	}
	if *platform != "" {
		cfg.Embed.Platform = *platform
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
