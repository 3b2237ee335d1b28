package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/joho/godotenv"
)

// ServerSettings is the process configuration for cmd/server.
type ServerSettings struct {
	Port        uint   // necs binary transport
	JSONPort    uint   // JSON WebSocket + HTTP endpoints, 0 disables
	TickRate    int
	Name        string
	Version     string // required client version, empty accepts any
	PhysicsFile string

	// Directory registration, disabled when MasterURL is empty.
	MasterURL  string
	PublicAddr string
	Region     string
}

// DefaultServerSettings returns the settings used when nothing is configured.
func DefaultServerSettings() ServerSettings {
	return ServerSettings{
		Port:     7373,
		JSONPort: 3000,
		TickRate: netconfig.TickRate,
		Name:     "Puck Duel Server",
	}
}

// LoadServerEnv loads the given .env files (default ".env") when present and
// resolves PUCK_* variables on top of the defaults. A missing file is not an
// error; a malformed one is.
func LoadServerEnv(files ...string) (ServerSettings, error) {
	s := DefaultServerSettings()

	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return s, fmt.Errorf("load %s: %w", f, err)
		}
		log.Printf("[config] loaded environment from %s", f)
	}

	var err error
	if s.Port, err = envUint("PUCK_PORT", s.Port); err != nil {
		return s, err
	}
	if s.JSONPort, err = envUint("PUCK_JSON_PORT", s.JSONPort); err != nil {
		return s, err
	}
	tick, err := envUint("PUCK_TICKRATE", uint(s.TickRate))
	if err != nil {
		return s, err
	}
	s.TickRate = int(tick)

	s.Name = envString("PUCK_NAME", s.Name)
	s.Version = envString("PUCK_VERSION", s.Version)
	s.PhysicsFile = envString("PUCK_PHYSICS", s.PhysicsFile)
	s.MasterURL = envString("PUCK_MASTER", s.MasterURL)
	s.PublicAddr = envString("PUCK_PUBLIC_ADDR", s.PublicAddr)
	s.Region = envString("PUCK_REGION", s.Region)
	return s, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envUint(key string, def uint) (uint, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return uint(n), nil
}
