package game

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout reports that no input arrived within the allowed window.
var ErrTimeout = errors.New("game: input timed out")

// MessageID identifies a previously sent message so it can be edited or
// deleted in place.
type MessageID string

// Input is one text message read from the initiating player.
type Input struct {
	ID   MessageID `json:"id"`
	Text string    `json:"text"`
}

// Channel is the narrow transport surface the engine drives. A Channel is
// scoped to one player in one conversation: Await only ever yields messages
// from the initiating player, and each input is consumed by reading it.
type Channel interface {
	// Send displays an outcome and returns a handle for later edits.
	Send(ctx context.Context, o Outcome) (MessageID, error)
	// Edit updates a previously sent message in place.
	Edit(ctx context.Context, id MessageID, o Outcome) error
	// Delete scrubs a message, used to clear a player's action input
	// after it has been read.
	Delete(ctx context.Context, id MessageID) error
	// Await blocks for the player's next message or ErrTimeout.
	Await(ctx context.Context, timeout time.Duration) (Input, error)
}
