package session

import (
	"context"
	"strconv"
	"strings"

	"kasino/internal/game"
)

// negotiate prompts the player for a wager and validates it against the
// balance snapshot taken at round start. A nil rejection means the amount
// is valid. No debit happens here; the stake is only taken once a resolver
// runs.
func (c *Coordinator) negotiate(ctx context.Context, ch game.Channel, balance int64) (int64, *game.Outcome) {
	_, _ = ch.Send(ctx, game.Outcome{
		Title:  "Enter Your Bet",
		Detail: "Please enter your bet amount as a whole number. Make sure it's within your balance.",
	})

	in, err := ch.Await(ctx, c.inputTimeout)
	if err != nil {
		o := game.Rejection("Timeout", "Betting timed out. Please try again.")
		return 0, &o
	}

	amount, perr := strconv.ParseInt(strings.TrimSpace(in.Text), 10, 64)
	if perr != nil {
		o := game.Rejection("Invalid Input", "Please enter a valid number. (You need to run the command again)")
		return 0, &o
	}
	if amount <= 0 {
		o := game.Rejection("Invalid Input", "Bet amount must be a positive number. Please try again.")
		return 0, &o
	}
	if amount > balance {
		o := game.Rejection("Error", "You don't have that much money.")
		return 0, &o
	}
	return amount, nil
}
