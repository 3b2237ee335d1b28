// Package protocol is the JSON envelope wire format used by browser clients.
// Go clients speak the same messages through necs instead.
package protocol

import (
	"encoding/json"
	"errors"
)

// Client -> server.
const (
	MsgJoin    = "join"
	MsgPointer = "setPointer"
	MsgMove    = "move"
	MsgShoot   = "shoot"
	MsgJolt    = "jolt"
)

// Server -> client.
const (
	MsgJoined               = "joined"
	MsgRoster               = "roster"
	MsgPlayerAdded          = "playerAdded"
	MsgPlayerMoved          = "playerMoved"
	MsgPlayerRemoved        = "playerRemoved"
	MsgPuckState            = "puckState"
	MsgPuckShot             = "puckShot"
	MsgPossession           = "possession"
	MsgScoreUpdated         = "scoreUpdated"
	MsgPositionsReset       = "positionsReset"
	MsgMatchOver            = "matchOver"
	MsgSpeedModifierChanged = "speedModifierChanged"
)

var (
	ErrEmptyFrame   = errors.New("empty frame")
	ErrUnknownType  = errors.New("unknown message type")
	ErrMissingField = errors.New("missing field")
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"` // raw payload bytes
}
