package game

import (
	"context"
	"time"
)

const (
	defaultInputTimeout = 30 * time.Second
	defaultFrameDelay   = 700 * time.Millisecond
)

// Engine runs the game resolvers. It holds the timing knobs shared by all
// games; randomness is supplied per round so outcomes stay verifiable.
type Engine struct {
	inputTimeout time.Duration
	frameDelay   time.Duration
}

// NewEngine creates an engine. A zero input timeout or a negative frame
// delay selects the default.
func NewEngine(inputTimeout, frameDelay time.Duration) *Engine {
	if inputTimeout <= 0 {
		inputTimeout = defaultInputTimeout
	}
	if frameDelay < 0 {
		frameDelay = defaultFrameDelay
	}
	return &Engine{
		inputTimeout: inputTimeout,
		frameDelay:   frameDelay,
	}
}

// sleep waits for d or until the context is cancelled. Used between slot
// machine animation frames.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
