package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/automoto/puckduel/shared/messages"
)

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: %w", ErrUnknownType)
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %q: nil payload", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// EncodeMessage wraps a server message in an envelope named after its type.
func EncodeMessage(msg any) ([]byte, error) {
	t, ok := TypeOf(msg)
	if !ok {
		return nil, fmt.Errorf("encode %T: %w", msg, ErrUnknownType)
	}
	return Encode(t, msg)
}

// TypeOf maps a server->client message to its envelope type.
func TypeOf(msg any) (string, bool) {
	switch msg.(type) {
	case messages.Joined:
		return MsgJoined, true
	case messages.Roster:
		return MsgRoster, true
	case messages.PlayerAdded:
		return MsgPlayerAdded, true
	case messages.PlayerMoved:
		return MsgPlayerMoved, true
	case messages.PlayerRemoved:
		return MsgPlayerRemoved, true
	case messages.PuckState:
		return MsgPuckState, true
	case messages.PuckShot:
		return MsgPuckShot, true
	case messages.Possession:
		return MsgPossession, true
	case messages.ScoreUpdated:
		return MsgScoreUpdated, true
	case messages.PositionsReset:
		return MsgPositionsReset, true
	case messages.MatchOver:
		return MsgMatchOver, true
	case messages.SpeedModifierChanged:
		return MsgSpeedModifierChanged, true
	}
	return "", false
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyFrame
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

// DecodeClientMessage turns an inbound envelope into one of the
// messages.*Input / JoinRequest values. Frames with absent or non-finite
// coordinates fail with ErrMissingField.
func DecodeClientMessage(env Envelope) (any, error) {
	switch env.T {
	case MsgJoin:
		if len(env.P) == 0 {
			return messages.JoinRequest{}, nil
		}
		return DecodePayload[messages.JoinRequest](env)
	case MsgMove:
		return decodeFrame[moveFrame](env)
	case MsgPointer:
		return decodeFrame[pointerFrame](env)
	case MsgShoot:
		return decodeFrame[shootFrame](env)
	case MsgJolt:
		return decodeFrame[joltFrame](env)
	}
	return nil, fmt.Errorf("%q: %w", env.T, ErrUnknownType)
}

type frame interface {
	message() (any, bool)
}

func decodeFrame[F frame](env Envelope) (any, error) {
	f, err := DecodePayload[F](env)
	if err != nil {
		return nil, err
	}
	msg, ok := f.message()
	if !ok {
		return nil, fmt.Errorf("%q: %w", env.T, ErrMissingField)
	}
	return msg, nil
}
