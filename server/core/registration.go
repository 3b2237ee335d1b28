package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/puckduel/shared/netconfig"
)

// HeartbeatInterval is how often a registered table reports its seats.
const HeartbeatInterval = 30 * time.Second

// PlayerCounter reports occupied seats. *Server satisfies it.
type PlayerCounter interface {
	PlayerCount() int
}

// Registration registers the table with a master server and heartbeats its
// seat count.
type Registration struct {
	masterURL string
	tableID   string
	name      string
	address   string
	version   string
	region    string
	players   PlayerCounter
	client    *http.Client
	interval  time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
}

type regRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Players  int    `json:"players"`
	MaxSeats int    `json:"maxSeats"`
	Version  string `json:"version"`
	Region   string `json:"region"`
}

type regResponse struct {
	ID string `json:"id"`
}

type heartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

func NewRegistration(masterURL, name, address, version, region string, players PlayerCounter) *Registration {
	return &Registration{
		masterURL: masterURL,
		name:      name,
		address:   address,
		version:   version,
		region:    region,
		players:   players,
		client:    &http.Client{Timeout: 5 * time.Second},
		interval:  HeartbeatInterval,
		stopCh:    make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.register(); err != nil {
		log.Printf("[registration] initial registration failed: %v", err)
	}
	go r.heartbeatLoop()
}

func (r *Registration) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func (r *Registration) register() error {
	body, err := json.Marshal(regRequest{
		Name:     r.name,
		Address:  r.address,
		Players:  r.players.PlayerCount(),
		MaxSeats: netconfig.MaxSeats,
		Version:  r.version,
		Region:   r.region,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.masterURL+"/tables/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result regResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	r.tableID = result.ID
	log.Printf("[registration] registered with master (id=%s)", r.tableID)
	return nil
}

func (r *Registration) heartbeatLoop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(); err != nil {
				log.Printf("[registration] heartbeat failed: %v", err)
			}
		}
	}
}

func (r *Registration) sendHeartbeat() error {
	if r.tableID == "" {
		return r.register()
	}

	body, err := json.Marshal(heartbeatRequest{
		ID:      r.tableID,
		Players: r.players.PlayerCount(),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.masterURL+"/tables/heartbeat", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Println("[registration] master lost our registration, re-registering")
		return r.register()
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}
