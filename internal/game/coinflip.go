package game

import (
	"context"
	"fmt"
	"strings"
)

// CoinGuess is a parsed coin flip guess.
type CoinGuess int

const (
	GuessInvalid CoinGuess = iota
	GuessHeads
	GuessTails
)

// ParseCoinGuess maps raw player input to a closed guess set. Anything
// outside the recognized tokens is Invalid and rejects the round.
func ParseCoinGuess(s string) CoinGuess {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "heads":
		return GuessHeads
	case "t", "tails":
		return GuessTails
	default:
		return GuessInvalid
	}
}

// Coinflip solicits a heads/tails guess, draws one fair binary outcome and
// pays the bet amount either way. The stake is only at risk once a valid
// guess has been read.
func (e *Engine) Coinflip(ctx context.Context, ch Channel, nick string, bet int64, rng Rand) Outcome {
	_, _ = ch.Send(ctx, Outcome{
		Title:  "Coin Flip",
		Detail: fmt.Sprintf("%s, type 'h' for Heads or 't' for Tails to make your guess.", nick),
	})

	in, err := ch.Await(ctx, e.inputTimeout)
	if err != nil {
		return Rejection("Timeout", fmt.Sprintf("%s, you took too long to guess. No bet was taken.", nick))
	}

	guess := ParseCoinGuess(in.Text)
	if guess == GuessInvalid {
		return Rejection("Invalid Guess", fmt.Sprintf("%s, type 'h' or 't'. No bet was taken.", nick))
	}

	flip := GuessHeads
	if rng.Intn(2) == 1 {
		flip = GuessTails
	}

	if guess == flip {
		return Outcome{
			Title:  "Coin Flip Result",
			Detail: fmt.Sprintf("%s, you won!", nick),
			Delta:  bet,
		}
	}
	return Outcome{
		Title:  "Coin Flip Result",
		Detail: fmt.Sprintf("%s, better luck next time!", nick),
		Delta:  -bet,
	}
}
