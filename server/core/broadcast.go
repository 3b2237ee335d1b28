package core

import "github.com/automoto/puckduel/shared/netconfig"

// Conn is one client connection as seen by the game. Transports provide it.
type Conn interface {
	ID() string
	Send(msg any) error
	Close() error
}

// Broadcaster delivers server events. Calls come from the game loop only and
// must not block on the network.
type Broadcaster interface {
	// Attach binds a seat to its connection; Detach unbinds it.
	Attach(seat netconfig.Seat, conn Conn)
	Detach(seat netconfig.Seat)

	SendTo(seat netconfig.Seat, msg any)
	// SendConn reaches a connection with no seat, e.g. a rejected joiner.
	SendConn(conn Conn, msg any)
	Broadcast(msg any)
	BroadcastExcept(seat netconfig.Seat, msg any)
}
