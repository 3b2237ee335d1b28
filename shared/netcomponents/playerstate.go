package netcomponents

import (
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	Seat          netconfig.Seat
	Radius        float64
	HasPuck       bool
	CanJolt       bool
	SpeedModifier float64 // 1.0 normally, reduced while a jolt penalty is pending

	// Last pointer the client reported. HasPointer is false until the first one.
	PointerX, PointerY float64
	HasPointer         bool
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
