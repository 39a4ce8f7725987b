package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"kasino/internal/game"
	"kasino/internal/ledger"
	"kasino/internal/session"
)

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	health := fiber.Map{
		"store": s.store.Health(c.Context()),
		"sessions": fiber.Map{
			"status":            "running",
			"connected_clients": s.hub.ClientCount(),
		},
	}
	return c.JSON(health)
}

// balanceHandler returns a player's balance, creating the entry on first
// reference.
func (s *FiberServer) balanceHandler(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Player ID is required"})
	}
	nick := c.Query("nick", id)

	p, err := s.coord.Balance(c.Context(), id, nick)
	if err != nil {
		log.Printf("[SERVER] Balance flush failed for %s: %v", id, err)
	}
	return c.JSON(p)
}

// leaderboardHandler returns the top players by balance.
func (s *FiberServer) leaderboardHandler(c *fiber.Ctx) error {
	n := c.QueryInt("limit", 10)
	return c.JSON(fiber.Map{"players": s.coord.Leaderboard(n)})
}

type payRequest struct {
	FromID   string `json:"from_id"`
	FromNick string `json:"from_nick"`
	ToID     string `json:"to_id"`
	ToNick   string `json:"to_nick"`
	Amount   int64  `json:"amount"`
}

// payHandler transfers balance between two players.
func (s *FiberServer) payHandler(c *fiber.Ctx) error {
	var req payRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.FromID == "" || req.ToID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Payer and recipient IDs are required"})
	}

	err := s.coord.Pay(c.Context(), req.FromID, req.FromNick, req.ToID, req.ToNick, req.Amount)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": fmt.Sprintf("%s paid %s %d.", req.FromNick, req.ToNick, req.Amount)})
	case errors.Is(err, ledger.ErrInvalidAmount):
		return c.Status(400).JSON(fiber.Map{"error": "You must specify an amount greater than 0."})
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return c.Status(400).JSON(fiber.Map{"error": "You do not have enough balance to make this payment."})
	case errors.Is(err, session.ErrRoundInProgress):
		return c.Status(409).JSON(fiber.Map{"error": "A round is in progress for one of the players."})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Payment failed"})
	}
}

type resetRequest struct {
	ActorID    string `json:"actor_id"`
	TargetID   string `json:"target_id"`
	TargetNick string `json:"target_nick"`
}

// resetHandler sets a player's balance back to the reset value. Only the
// configured admin identity is authorized.
func (s *FiberServer) resetHandler(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ActorID == "" || req.TargetID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Actor and target IDs are required"})
	}

	p, err := s.coord.Reset(c.Context(), req.ActorID, req.TargetID, req.TargetNick)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": fmt.Sprintf("%s's balance has been reset to %d.", p.Nick, p.Balance), "player": p})
	case errors.Is(err, ledger.ErrNotAuthorized):
		return c.Status(403).JSON(fiber.Map{"error": "Only the designated admin can reset balances."})
	case errors.Is(err, session.ErrRoundInProgress):
		return c.Status(409).JSON(fiber.Map{"error": "The target has a round in progress."})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Reset failed"})
	}
}

// sessionWebSocketHandler hosts one interactive session per connection. The
// client sends command messages to start a round and input messages to
// answer the engine's prompts.
func (s *FiberServer) sessionWebSocketHandler(conn *websocket.Conn) {
	userID := conn.Query("user_id")
	if userID == "" {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","error":"user_id query parameter is required"}`))
		conn.Close()
		return
	}
	nick := conn.Query("nick", userID)

	client := newClient(conn, userID, nick)
	s.hub.register <- client
	defer func() { s.hub.unregister <- client }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var inputSeq int64
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.sendError("Invalid message")
			continue
		}

		switch msg.Type {
		case "command":
			kind, ok := session.ParseGameKind(msg.Name)
			if !ok {
				client.sendError(fmt.Sprintf("Unknown game %q", msg.Name))
				continue
			}
			go func() {
				if _, err := s.coord.Play(ctx, client, kind, client.userID, client.nick); err != nil {
					if errors.Is(err, session.ErrRoundInProgress) {
						client.sendError("Round already in progress")
						return
					}
					log.Printf("[WS] Round failed for %s: %v", client.userID, err)
					client.sendError("Round failed")
				}
			}()

		case "input":
			inputSeq++
			client.offer(game.Input{ID: game.MessageID(fmt.Sprintf("i%d", inputSeq)), Text: msg.Text})

		default:
			client.sendError(fmt.Sprintf("Unknown message type %q", msg.Type))
		}
	}
}
