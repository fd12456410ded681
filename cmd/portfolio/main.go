// Command portfolio is a client for the portfolio relay: it submits contact
// messages and shows the tracked Discord presence.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logging.Setup("portfolio-cli", os.Getenv("LOG_LEVEL"), "text")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
