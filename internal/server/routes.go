package server

import (
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/gofiber/contrib/websocket"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Accept,Authorization,Content-Type",
		AllowCredentials: false, // credentials require explicit origins
		MaxAge:           300,
	}))

	s.App.Get("/health", s.healthHandler)

	api := s.App.Group("/api/v1")

	api.Get("/players/:id/balance", s.balanceHandler)
	api.Get("/leaderboard", s.leaderboardHandler)
	api.Post("/pay", s.payHandler)
	api.Post("/admin/reset", s.resetHandler)

	// Interactive games run over the session websocket.
	s.App.Get("/ws", websocket.New(s.sessionWebSocketHandler))
}
