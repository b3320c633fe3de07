package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumos-Labs-HQ/tabledesk/cmd"
	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		color.Red("❌ %v", err)
		stop()
		os.Exit(1)
	}
}
