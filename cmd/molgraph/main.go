package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pengfeili1/Molmodsummer/internal/cli"
)

var version = "v0.1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	cli.Execute(ctx, version)
}
