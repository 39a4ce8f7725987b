package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"kasino/internal/config"
	"kasino/internal/server"
)

func main() {
	cfg := config.Load()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("[SERVER] Startup failed: %v", err)
	}
	srv.RegisterFiberRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[SERVER] Listening on %s", cfg.Addr)
		if err := srv.Listen(cfg.Addr); err != nil {
			log.Fatalf("[SERVER] Listen failed: %v", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[SERVER] Shutdown error: %v", err)
	}
	log.Println("[SERVER] Stopped")
}
