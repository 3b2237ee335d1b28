package netcomponents

import (
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPuckData struct {
	Radius float64
	HeldBy netconfig.Seat // SeatNone while free
}

// Free reports whether no seat holds the puck.
func (p *NetPuckData) Free() bool {
	return p.HeldBy == netconfig.SeatNone
}

var NetPuck = donburi.NewComponentType[NetPuckData]()
