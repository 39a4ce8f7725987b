package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"kasino/internal/game"
)

// Client is one connected player. It implements game.Channel over the
// websocket: outcomes go out as message/edit/delete events, and the
// player's typed text feeds the Await queue.
type Client struct {
	conn   *websocket.Conn
	userID string
	nick   string

	mu     sync.Mutex // guards writes and the message counter
	nextID int64

	inputs chan game.Input
}

func newClient(conn *websocket.Conn, userID, nick string) *Client {
	return &Client{
		conn:   conn,
		userID: userID,
		nick:   nick,
		inputs: make(chan game.Input, 8),
	}
}

// Hub tracks connected clients. Sessions run per client; the hub only
// handles registration and the connected count for health reporting.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client connected: %s (Total: %d)", client.userID, total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.conn.Close()
				log.Printf("[WS] Client disconnected: %s (Total: %d)", client.userID, len(h.clients))
			}
			h.mu.Unlock()

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// wsEvent is the wire shape of everything the server pushes to a client.
type wsEvent struct {
	Type    string         `json:"type"`
	ID      game.MessageID `json:"id,omitempty"`
	Outcome *game.Outcome  `json:"outcome,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// clientMessage is the wire shape of everything a client sends.
type clientMessage struct {
	Type string `json:"type"` // command or input
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

func (c *Client) Send(ctx context.Context, o game.Outcome) (game.MessageID, error) {
	c.mu.Lock()
	c.nextID++
	id := game.MessageID(fmt.Sprintf("m%d", c.nextID))
	c.mu.Unlock()

	return id, c.write(wsEvent{Type: "message", ID: id, Outcome: &o})
}

func (c *Client) Edit(ctx context.Context, id game.MessageID, o game.Outcome) error {
	return c.write(wsEvent{Type: "edit", ID: id, Outcome: &o})
}

func (c *Client) Delete(ctx context.Context, id game.MessageID) error {
	return c.write(wsEvent{Type: "delete", ID: id})
}

// Await blocks for the player's next message. Inputs queued before the
// call are stale (typed against an earlier prompt, or after a round ended)
// and are discarded so they cannot replay into this prompt.
func (c *Client) Await(ctx context.Context, timeout time.Duration) (game.Input, error) {
	c.drainStale()

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case in := <-c.inputs:
		return in, nil
	case <-t.C:
		return game.Input{}, game.ErrTimeout
	case <-ctx.Done():
		return game.Input{}, ctx.Err()
	}
}

func (c *Client) drainStale() {
	for {
		select {
		case in := <-c.inputs:
			log.Printf("[WS] Discarding stale input %q from %s", in.Text, c.userID)
		default:
			return
		}
	}
}

// offer queues a typed input for the pending Await. Inputs beyond the small
// buffer are dropped rather than replayed into a later round.
func (c *Client) offer(in game.Input) {
	select {
	case c.inputs <- in:
	default:
		log.Printf("[WS] Dropping input from %s, queue full", c.userID)
	}
}

func (c *Client) sendError(msg string) {
	if err := c.write(wsEvent{Type: "error", Error: msg}); err != nil {
		log.Printf("[WS] Write error for user %s: %v", c.userID, err)
	}
}

func (c *Client) write(ev wsEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
