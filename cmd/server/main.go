// Package main runs the storefront API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shoplite/shoplite/internal/app/runtime"
)

func main() {
	application, err := runtime.NewApplication()
	if err != nil {
		log.Fatalf("Failed to initialise application: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	if err := application.Shutdown(context.Background()); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
}
