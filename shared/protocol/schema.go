package protocol

import (
	"github.com/automoto/puckduel/shared/messages"
	"github.com/invopop/jsonschema"
)

// Catalog names every envelope payload by its "t" value. It exists to be
// reflected into a JSON Schema for browser client authors.
type Catalog struct {
	Join    messages.JoinRequest  `json:"join"`
	Pointer messages.PointerInput `json:"setPointer"`
	Move    messages.MoveInput    `json:"move"`
	Shoot   messages.ShootInput   `json:"shoot"`
	Jolt    messages.JoltInput    `json:"jolt"`

	Joined               messages.Joined               `json:"joined"`
	Roster               messages.Roster               `json:"roster"`
	PlayerAdded          messages.PlayerAdded          `json:"playerAdded"`
	PlayerMoved          messages.PlayerMoved          `json:"playerMoved"`
	PlayerRemoved        messages.PlayerRemoved        `json:"playerRemoved"`
	PuckState            messages.PuckState            `json:"puckState"`
	PuckShot             messages.PuckShot             `json:"puckShot"`
	Possession           messages.Possession           `json:"possession"`
	ScoreUpdated         messages.ScoreUpdated         `json:"scoreUpdated"`
	PositionsReset       messages.PositionsReset       `json:"positionsReset"`
	MatchOver            messages.MatchOver            `json:"matchOver"`
	SpeedModifierChanged messages.SpeedModifierChanged `json:"speedModifierChanged"`
}

// Schema reflects the Catalog.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Catalog))
	schema.Title = "Puck Duel wire protocol"
	schema.Description = `Payloads ("p") of the JSON envelope {"t": type, "p": payload}, keyed by type`
	return schema
}
