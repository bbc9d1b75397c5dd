package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"screencode/internal/gateway/app"
)

const shutdownGrace = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New()
	if err != nil {
		log.Fatalf("gateway init failed: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- a.Start() }()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatalf("gateway stopped: %v", err)
		}
		return
	case <-ctx.Done():
	}

	log.Println("shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		log.Printf("gateway forced to shut down: %v", err)
	}
}
