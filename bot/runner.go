package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/automoto/puckduel/network"
	"github.com/automoto/puckduel/shared/netconfig"
)

// Client is the part of network.Client the runner needs.
type Client interface {
	State() network.ClientState
	View() network.View
	SendMessage(msg any) error
}

// Run drives brain against c once per tick until ctx ends or the client
// errors out.
func Run(ctx context.Context, c Client, brain *Brain) error {
	ticker := time.NewTicker(netconfig.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		switch c.State() {
		case network.StateError:
			return fmt.Errorf("client failed")
		case network.StateJoinedGame:
		default:
			continue
		}

		act, ok := brain.Decide(c.View())
		if !ok {
			continue
		}
		if err := Send(c, act); err != nil {
			log.Printf("[bot] send: %v", err)
		}
	}
}

// Send writes an action as individual messages: pointer, move, then any shot
// or jolt.
func Send(c Client, act Action) error {
	if err := c.SendMessage(act.Pointer); err != nil {
		return err
	}
	if err := c.SendMessage(act.Move); err != nil {
		return err
	}
	if act.Shoot != nil {
		if err := c.SendMessage(*act.Shoot); err != nil {
			return err
		}
	}
	if act.Jolt != nil {
		if err := c.SendMessage(*act.Jolt); err != nil {
			return err
		}
	}
	return nil
}
