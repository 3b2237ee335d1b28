package netcomponents

import "github.com/yohamta/donburi"

type NetPositionData struct {
	X, Y float64
}

var NetPosition = donburi.NewComponentType[NetPositionData]()
