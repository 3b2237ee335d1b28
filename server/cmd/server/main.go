package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/puckduel/config"
	"github.com/automoto/puckduel/server/core"
	"github.com/automoto/puckduel/server/transport/jsonws"
)

func main() {
	settings, err := config.LoadServerEnv(".env")
	if err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	port := flag.Uint("port", settings.Port, "necs WebSocket port (Go clients)")
	jsonPort := flag.Uint("jsonport", settings.JSONPort, "JSON WebSocket and HTTP port (browser clients, 0 = off)")
	tickRate := flag.Int("tickrate", settings.TickRate, "Simulation ticks per second")
	name := flag.String("name", settings.Name, "Table display name")
	version := flag.String("version", settings.Version, "Required client version (empty = accept any)")
	physicsFile := flag.String("physics", settings.PhysicsFile, "YAML physics tuning file (empty = defaults)")
	masterURL := flag.String("master", settings.MasterURL, "Master server URL (empty = don't register)")
	publicAddr := flag.String("addr", settings.PublicAddr, "Address advertised to the master server")
	region := flag.String("region", settings.Region, "Region advertised to the master server")
	flag.Parse()

	if *physicsFile != "" {
		tuning, err := config.LoadPhysics(*physicsFile)
		if err != nil {
			log.Fatalf("Failed to load physics: %v", err)
		}
		config.Physics = tuning
	}

	server := core.NewServer(core.Options{
		Name:     *name,
		TickRate: *tickRate,
		Version:  *version,
		Physics:  config.Physics,
	})

	var httpSrv *http.Server
	if *jsonPort != 0 {
		mux := http.NewServeMux()
		mux.Handle("/ws", jsonws.NewHandler(server))
		mux.HandleFunc("/health", server.HealthHandler())
		mux.HandleFunc("/diagnostics", server.DiagnosticsHandler())
		httpSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", *jsonPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Printf("JSON transport listening on %s (ws endpoint: /ws)", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("HTTP server error: %v", err)
			}
		}()
	}

	var reg *core.Registration
	if *masterURL != "" {
		addr := *publicAddr
		if addr == "" {
			addr = fmt.Sprintf("localhost:%d", *port)
		}
		reg = core.NewRegistration(*masterURL, *name, addr, *version, *region, server)
		reg.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if reg != nil {
			reg.Stop()
		}
		if httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = httpSrv.Shutdown(ctx)
			cancel()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting puck server %q on port %d (tick rate: %d/s, version: %s)",
		*name, *port, *tickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
