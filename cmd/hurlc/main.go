package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hurlstudio/hurlc/internal/interfaces/cli"
	"github.com/hurlstudio/hurlc/internal/interfaces/di"
)

func main() {
	// Cancelling the context interrupts a running hurl process.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.Execute(ctx, di.Factory)
}
