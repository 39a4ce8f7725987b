package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"kasino/internal/config"
	"kasino/internal/game"
	"kasino/internal/ledger"
	"kasino/internal/session"
)

type FiberServer struct {
	*fiber.App

	cfg    config.Config
	store  ledger.Store
	ledger *ledger.Ledger
	coord  *session.Coordinator
	hub    *Hub
}

// New builds the snapshot store, loads the ledger and wires the session
// coordinator behind a fiber app.
func New(cfg config.Config) (*FiberServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	led, err := ledger.Open(ctx, store, cfg.AdminID)
	if err != nil {
		store.Close()
		return nil, err
	}

	engine := game.NewEngine(cfg.InputTimeout, cfg.SlotFrameDelay)
	coord := session.NewCoordinator(led, engine, cfg.InputTimeout)
	hub := NewHub()

	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader:  "kasino",
			AppName:       "kasino",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  10 * time.Second,
			IdleTimeout:   120 * time.Second,
			StrictRouting: false,
		}),

		cfg:    cfg,
		store:  store,
		ledger: led,
		coord:  coord,
		hub:    hub,
	}

	server.App.Use(recover.New())
	server.App.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	go hub.Run()

	log.Printf("[SERVER] Ledger store %q ready", cfg.StoreBackend)
	return server, nil
}

func newStore(ctx context.Context, cfg config.Config) (ledger.Store, error) {
	switch cfg.StoreBackend {
	case "", "file":
		return ledger.NewFileStore(cfg.SnapshotPath), nil
	case "redis":
		return ledger.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKey)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend requires DATABASE_URL")
		}
		return ledger.NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// Shutdown stops the listener, flushes a final snapshot and releases the
// store.
func (s *FiberServer) Shutdown(ctx context.Context) error {
	log.Println("[SERVER] Shutting down...")

	if err := s.App.ShutdownWithContext(ctx); err != nil {
		log.Printf("[SERVER] Listener shutdown error: %v", err)
	}

	s.hub.Stop()

	if err := s.ledger.Close(ctx); err != nil {
		return fmt.Errorf("final flush: %w", err)
	}
	return nil
}
