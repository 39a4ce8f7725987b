package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"kasino/internal/game"
	"kasino/internal/ledger"
)

var (
	// ErrRoundInProgress rejects a re-entrant round for the same identity.
	ErrRoundInProgress = errors.New("session: round already in progress")
	// ErrUnknownGame rejects a command that maps to no resolver.
	ErrUnknownGame = errors.New("session: unknown game")
)

// GameKind names a playable game command.
type GameKind string

const (
	GameCoinflip GameKind = "coinflip"
	GameDiceroll GameKind = "diceroll"
	GameSlots    GameKind = "slotmachine"
	GameCrash    GameKind = "crash"
)

// ParseGameKind maps a raw command name to a GameKind.
func ParseGameKind(s string) (GameKind, bool) {
	switch GameKind(s) {
	case GameCoinflip, GameDiceroll, GameSlots, GameCrash:
		return GameKind(s), true
	default:
		return "", false
	}
}

// Coordinator orchestrates one full round per player: identity resolution,
// bet negotiation, resolver dispatch, delta settlement and flush. It holds
// an exclusive in-flight flag per player for the duration of a round.
type Coordinator struct {
	ledger       *ledger.Ledger
	engine       *game.Engine
	inputTimeout time.Duration

	// newRound yields the server seed and draw stream for one round.
	newRound func(playerID string) (string, game.Rand)

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewCoordinator wires the coordinator to its ledger and engine. A zero
// input timeout selects 30 seconds.
func NewCoordinator(l *ledger.Ledger, e *game.Engine, inputTimeout time.Duration) *Coordinator {
	if inputTimeout <= 0 {
		inputTimeout = 30 * time.Second
	}
	return &Coordinator{
		ledger:       l,
		engine:       e,
		inputTimeout: inputTimeout,
		newRound: func(playerID string) (string, game.Rand) {
			seed := game.GenerateSeed()
			return seed, game.NewFairSource(seed, playerID)
		},
		inFlight: make(map[string]bool),
	}
}

// Play runs one round of the named game for the player behind ch. The
// payout delta is applied atomically and flushed before the round is
// reported complete; a rejected negotiation ends with no mutation and no
// flush.
func (c *Coordinator) Play(ctx context.Context, ch game.Channel, kind GameKind, id, nick string) (game.Outcome, error) {
	if err := c.begin(id); err != nil {
		return game.Outcome{}, err
	}
	defer c.end(id)

	p, _ := c.ledger.GetOrCreate(id, nick)

	bet, rejection := c.negotiate(ctx, ch, p.Balance)
	if rejection != nil {
		_, _ = ch.Send(ctx, *rejection)
		return *rejection, nil
	}

	serverSeed, rng := c.newRound(id)

	var out game.Outcome
	switch kind {
	case GameCoinflip:
		out = c.engine.Coinflip(ctx, ch, nick, bet, rng)
	case GameDiceroll:
		out = c.engine.Diceroll(ctx, ch, nick, bet, rng)
	case GameSlots:
		out = c.engine.Slots(ctx, ch, nick, bet, rng)
	case GameCrash:
		out = c.engine.Crash(ctx, ch, nick, bet, rng)
		out.AddField("Fairness", fmt.Sprintf("commitment %s, seed %s", game.Commitment(serverSeed), serverSeed))
	default:
		return game.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownGame, kind)
	}

	if out.Rejected {
		_, _ = ch.Send(ctx, out)
		return out, nil
	}

	if _, err := c.ledger.Apply(id, out.Delta); err != nil {
		return game.Outcome{}, fmt.Errorf("apply delta: %w", err)
	}
	if err := c.ledger.Flush(ctx); err != nil {
		log.Printf("[SESSION] Flush failed for %s: %v", id, err)
		out.AddField("Warning", "Result applied but not yet saved durably.")
	}

	_, _ = ch.Send(ctx, out)
	return out, nil
}

// Balance resolves the player, creating the entry on first reference, and
// flushes only when something changed.
func (c *Coordinator) Balance(ctx context.Context, id, nick string) (ledger.Player, error) {
	p, created := c.ledger.GetOrCreate(id, nick)
	if created {
		if err := c.ledger.Flush(ctx); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Pay transfers amount from one player to another. Both entries are
// fetched-or-created first, and neither may have a round in flight.
func (c *Coordinator) Pay(ctx context.Context, fromID, fromNick, toID, toNick string, amount int64) error {
	if err := c.begin(fromID); err != nil {
		return err
	}
	defer c.end(fromID)
	if fromID != toID {
		if err := c.begin(toID); err != nil {
			return err
		}
		defer c.end(toID)
	}

	c.ledger.GetOrCreate(fromID, fromNick)
	c.ledger.GetOrCreate(toID, toNick)

	if err := c.ledger.Transfer(fromID, toID, amount); err != nil {
		return err
	}
	return c.ledger.Flush(ctx)
}

// Leaderboard returns the top players by balance, at most ten.
func (c *Coordinator) Leaderboard(n int) []ledger.Player {
	if n <= 0 || n > 10 {
		n = 10
	}
	return c.ledger.Top(n)
}

// Reset sets the target's balance to the reset value. Authorization is
// enforced by the ledger; the target may not have a round in flight.
func (c *Coordinator) Reset(ctx context.Context, actorID, targetID, targetNick string) (ledger.Player, error) {
	if err := c.begin(targetID); err != nil {
		return ledger.Player{}, err
	}
	defer c.end(targetID)

	p, err := c.ledger.Reset(actorID, targetID, targetNick)
	if err != nil {
		return ledger.Player{}, err
	}
	return p, c.ledger.Flush(ctx)
}

func (c *Coordinator) begin(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[id] {
		return ErrRoundInProgress
	}
	c.inFlight[id] = true
	return nil
}

func (c *Coordinator) end(id string) {
	c.mu.Lock()
	delete(c.inFlight, id)
	c.mu.Unlock()
}
