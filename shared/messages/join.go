package messages

import "github.com/automoto/puckduel/shared/netconfig"

// JoinRequest is sent by a client after connecting to request a seat.
type JoinRequest struct {
	Version    string `json:"version,omitempty"`
	PlayerName string `json:"name,omitempty"`
}

// Joined answers a JoinRequest. On success Seat is set and Message greets the
// player; on rejection Reason explains why and no world state changed.
type Joined struct {
	Success bool           `json:"success"`
	Seat    netconfig.Seat `json:"seat,omitempty"`
	Message string         `json:"message,omitempty"`
	Reason  string         `json:"reason,omitempty"`
}
