package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/automoto/puckduel/bot"
	"github.com/automoto/puckduel/config"
	"github.com/automoto/puckduel/network"
)

func main() {
	addr := flag.String("addr", "localhost:7373", "Server address (necs transport)")
	name := flag.String("name", "puckbot", "Player name")
	version := flag.String("version", "", "Client version sent on join")
	difficulty := flag.String("difficulty", "normal", "easy, normal or hard")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := network.NewClient()
	client.Connect(*addr, *version, *name)
	defer client.Disconnect()

	log.Printf("[bot] %s playing on %s (%s)", *name, *addr, *difficulty)
	err := bot.Run(ctx, client, bot.NewBrain(config.ParseBotDifficulty(*difficulty)))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[bot] %v: %v", err, client.LastError())
	}
}
