// File: cmd/arena/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/dilemma-arena/cmd"
	"github.com/xkilldash9x/dilemma-arena/internal/observability"
)

func main() {
	// A signal-aware context so Ctrl+C shuts the scheduler down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
