package core

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Diagnostics is the payload of /diagnostics.
type Diagnostics struct {
	Name        string   `json:"name"`
	Uptime      string   `json:"uptime"`
	TickRate    int      `json:"tickRate"`
	Players     int      `json:"players"`
	Connections int      `json:"connections"`
	State       Snapshot `json:"state"`
}

// Diagnostics reads a snapshot from the loop goroutine.
func (s *Server) Diagnostics(ctx context.Context) (Diagnostics, error) {
	reply := make(chan Snapshot, 1)
	if err := s.loop.PostContext(ctx, func() { reply <- s.game.Snapshot() }); err != nil {
		return Diagnostics{}, err
	}

	select {
	case snap := <-reply:
		return Diagnostics{
			Name:        s.name,
			Uptime:      time.Since(s.started).Truncate(time.Second).String(),
			TickRate:    s.tickRate,
			Players:     s.PlayerCount(),
			Connections: s.hub.Connected(),
			State:       snap,
		}, nil
	case <-ctx.Done():
		return Diagnostics{}, ctx.Err()
	}
}

// HealthHandler answers liveness probes.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// DiagnosticsHandler serves the current Diagnostics as JSON.
func (s *Server) DiagnosticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		diag, err := s.Diagnostics(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(diag); err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
		}
	}
}
