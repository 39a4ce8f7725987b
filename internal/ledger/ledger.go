package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotAuthorized       = errors.New("ledger: not authorized")
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrInvalidAmount       = errors.New("ledger: invalid amount")
	ErrUnknownPlayer       = errors.New("ledger: unknown player")
)

const (
	// StartingBalance is granted to a player on first reference.
	StartingBalance int64 = 1000
	// ResetBalance is applied by an administrative reset.
	ResetBalance int64 = 10

	flushAttempts = 3
	flushBackoff  = 100 * time.Millisecond
)

// Player is one ledger entry. The ID is an opaque, externally assigned
// identity; the nick is display-only and last-seen wins.
type Player struct {
	ID      string `json:"id"`
	Nick    string `json:"nick"`
	Balance int64  `json:"balance"`
}

// Store persists the full ledger snapshot. Save overwrites the previous
// snapshot wholesale and must be atomic: a crash mid-write may never leave
// a partial snapshot behind.
type Store interface {
	Load(ctx context.Context) (map[string]Player, error)
	Save(ctx context.Context, players map[string]Player) error
	Health(ctx context.Context) map[string]string
	Close() error
}

// Ledger is the single live balance mapping for the process. All reads and
// writes go through it; snapshot writes are serialized so concurrent rounds
// never race on the flush.
type Ledger struct {
	store Store
	admin string

	mu      sync.Mutex // guards players
	players map[string]Player

	flushMu sync.Mutex // serializes snapshot writes
}

// Open loads the snapshot from the store, or starts empty when none exists.
func Open(ctx context.Context, store Store, admin string) (*Ledger, error) {
	players, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if players == nil {
		players = make(map[string]Player)
	}
	log.Printf("[LEDGER] Loaded %d players", len(players))
	return &Ledger{store: store, admin: admin, players: players}, nil
}

// GetOrCreate returns the entry for id, creating it with the starting
// balance on first reference. The nick is refreshed to the last seen value.
// The second return reports whether a new entry was created.
func (l *Ledger) GetOrCreate(id, nick string) (Player, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.players[id]
	if !ok {
		p = Player{ID: id, Nick: nick, Balance: StartingBalance}
		l.players[id] = p
		log.Printf("[LEDGER] New player %s (%s)", nick, id)
		return p, true
	}
	if nick != "" && p.Nick != nick {
		p.Nick = nick
		l.players[id] = p
	}
	return p, false
}

// Balance returns the current balance for id.
func (l *Ledger) Balance(id string) (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.players[id]
	return p.Balance, ok
}

// Apply adds a round's payout delta to the player's balance. The balance
// may never settle negative; validated bets make that unreachable, so a
// negative result is an invariant violation and is refused.
func (l *Ledger) Apply(id string, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.players[id]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	if p.Balance+delta < 0 {
		return p.Balance, fmt.Errorf("%w: balance %d delta %d", ErrInsufficientBalance, p.Balance, delta)
	}
	p.Balance += delta
	l.players[id] = p
	return p.Balance, nil
}

// Transfer atomically debits from and credits to. Both entries must already
// exist; callers fetch-or-create them first. Paying oneself is refused.
func (l *Ledger) Transfer(from, to string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if from == to {
		return fmt.Errorf("%w: cannot pay yourself", ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	payer, ok := l.players[from]
	if !ok {
		return ErrUnknownPlayer
	}
	payee, ok := l.players[to]
	if !ok {
		return ErrUnknownPlayer
	}
	if payer.Balance < amount {
		return ErrInsufficientBalance
	}

	payer.Balance -= amount
	payee.Balance += amount
	l.players[from] = payer
	l.players[to] = payee
	return nil
}

// Reset sets the target's balance to the reset value, creating the entry if
// absent. Only the designated admin identity may call it.
func (l *Ledger) Reset(actor, target, nick string) (Player, error) {
	if l.admin == "" || actor != l.admin {
		return Player{}, ErrNotAuthorized
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.players[target]
	if !ok {
		p = Player{ID: target, Nick: nick}
	} else if nick != "" {
		p.Nick = nick
	}
	p.Balance = ResetBalance
	l.players[target] = p
	log.Printf("[LEDGER] Balance reset for %s by %s", target, actor)
	return p, nil
}

// Top returns up to n players ordered by balance descending, ties kept in
// a stable order.
func (l *Ledger) Top(n int) []Player {
	l.mu.Lock()
	all := make([]Player, 0, len(l.players))
	for _, p := range l.players {
		all = append(all, p)
	}
	l.mu.Unlock()

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Balance != all[j].Balance {
			return all[i].Balance > all[j].Balance
		}
		return all[i].ID < all[j].ID
	})
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Flush writes the full snapshot to the store, retrying with backoff. On
// persistent failure the in-memory state stays authoritative and the error
// is returned so callers can report a non-durable result.
func (l *Ledger) Flush(ctx context.Context) error {
	l.flushMu.Lock()
	defer l.flushMu.Unlock()

	snap := l.snapshot()

	var err error
	backoff := flushBackoff
	for attempt := 1; attempt <= flushAttempts; attempt++ {
		if err = l.store.Save(ctx, snap); err == nil {
			return nil
		}
		log.Printf("[LEDGER] Flush attempt %d/%d failed: %v", attempt, flushAttempts, err)
		if attempt < flushAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("flush cancelled: %w", ctx.Err())
			}
			backoff *= 2
		}
	}
	return fmt.Errorf("flush failed after %d attempts: %w", flushAttempts, err)
}

// Close flushes a final snapshot and releases the store.
func (l *Ledger) Close(ctx context.Context) error {
	err := l.Flush(ctx)
	if cerr := l.store.Close(); err == nil {
		err = cerr
	}
	return err
}

func (l *Ledger) snapshot() map[string]Player {
	l.mu.Lock()
	defer l.mu.Unlock()
	snap := make(map[string]Player, len(l.players))
	for id, p := range l.players {
		snap[id] = p
	}
	return snap
}
