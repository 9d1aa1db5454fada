package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbitzceo/voidbitzPromptWorkshop/cmd"
)

// @title Prompt Workshop API
// @version 1.0
// @description Author, organize, exchange and execute parameterized prompt templates.

// @host localhost:8080
// @BasePath /api/v1

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
