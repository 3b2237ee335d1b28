// Package master is the table directory: puck servers register and heartbeat,
// clients list the tables and pick one themselves.
package master

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TableInfo describes a puck table visible to clients.
type TableInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Players  int    `json:"players"`
	MaxSeats int    `json:"maxSeats"`
	Version  string `json:"version"`
	Region   string `json:"region"`
}

// Open reports whether the table has a free seat.
func (t TableInfo) Open() bool {
	return t.Players < t.MaxSeats
}

type tableRecord struct {
	TableInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active tables with TTL-based expiry.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*tableRecord
	ttl    time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		tables: make(map[string]*tableRecord),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
}

// Start runs the expiry sweep every interval until Stop.
func (r *Registry) Start(interval time.Duration) {
	go r.cleanupLoop(interval)
}

func (r *Registry) Stop() {
	r.once.Do(func() { close(r.stopCh) })
}

func (r *Registry) Register(info TableInfo) string {
	info.ID = uuid.NewString()

	r.mu.Lock()
	r.tables[info.ID] = &tableRecord{
		TableInfo: info,
		LastSeen:  r.now(),
	}
	r.mu.Unlock()

	return info.ID
}

func (r *Registry) Heartbeat(id string, players int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.tables[id]
	if !ok {
		return false
	}
	rec.LastSeen = r.now()
	rec.Players = players
	return true
}

// List returns tables ordered by name; with openOnly, full tables are left out.
func (r *Registry) List(openOnly bool) []TableInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]TableInfo, 0, len(r.tables))
	for _, rec := range r.tables {
		if openOnly && !rec.Open() {
			continue
		}
		result = append(result, rec.TableInfo)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Expire drops every table not seen within the TTL and returns how many.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, rec := range r.tables {
		if now.Sub(rec.LastSeen) >= r.ttl {
			log.Printf("[master] expired table %q (id=%s, last seen %s ago)",
				rec.Name, id, now.Sub(rec.LastSeen).Round(time.Second))
			delete(r.tables, id)
			n++
		}
	}
	return n
}

func (r *Registry) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}
