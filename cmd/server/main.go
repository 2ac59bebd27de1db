package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sharelist/backend/internal/config"
	"github.com/sharelist/backend/internal/frontend"
	"github.com/sharelist/backend/internal/mock"
	"github.com/sharelist/backend/internal/store"
	"github.com/sharelist/backend/internal/tenant"
	"github.com/sharelist/backend/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	dataDir := flag.String("data", "", "Override data directory")
	devMode := flag.Bool("dev", false, "Development mode (serve frontend from filesystem)")
	frontendDir := flag.String("frontend", "internal/frontend/static", "Frontend directory for -dev")
	demoMode := flag.Bool("demo", false, "Toggle random items on the demo tenant")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	st := store.New(cfg.Data.Dir)
	if err := st.CheckDefaults(); err != nil {
		log.Fatalf("Data root not usable: %v", err)
	}

	registry := tenant.NewRegistry(st)

	// Embedded frontend handler: when built with -tags embed, serves from
	// the binary. Otherwise falls back to the filesystem if the assets are
	// present next to the working directory.
	var embeddedHandler http.Handler
	if !*devMode {
		embeddedHandler = frontend.Handler()
		if embeddedHandler == nil {
			if _, err := os.Stat(*frontendDir); err == nil {
				log.Printf("No embedded frontend, falling back to: %s", *frontendDir)
				embeddedHandler = http.FileServer(http.Dir(*frontendDir))
			}
		}
	}

	server := ws.NewServer(cfg, registry, st, *frontendDir, *devMode, embeddedHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *demoMode {
		log.Println("Starting demo toggler on tenant \"demo\"")
		mock.NewToggler(registry, st, "demo", 3*time.Second).Start(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		os.Exit(0)
	}()

	if err := ws.ListenAndServe(cfg.Server.Host, cfg.Server.Port, server.Routes()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
