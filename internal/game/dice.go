package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const diceSides = 6

// Diceroll solicits a guess, rolls one die and pays the bet amount on an
// exact match. A guess that does not parse as an integer rejects the round
// with no mutation.
func (e *Engine) Diceroll(ctx context.Context, ch Channel, nick string, bet int64, rng Rand) Outcome {
	_, _ = ch.Send(ctx, Outcome{
		Title:  "Dice Roll",
		Detail: fmt.Sprintf("%s, guess the dice roll result by entering a number between 1 and 6.", nick),
	})

	in, err := ch.Await(ctx, e.inputTimeout)
	if err != nil {
		return Rejection("Timeout", fmt.Sprintf("%s, you took too long to guess. No bet was taken.", nick))
	}

	guess, perr := strconv.Atoi(strings.TrimSpace(in.Text))
	if perr != nil {
		return Rejection("Invalid Guess", fmt.Sprintf("%s, please enter a whole number. No bet was taken.", nick))
	}

	roll := rng.Intn(diceSides) + 1
	if guess == roll {
		return Outcome{
			Title:  "Dice Roll Result",
			Detail: fmt.Sprintf("%s, you guessed it right! You won!", nick),
			Delta:  bet,
		}
	}
	return Outcome{
		Title:  "Dice Roll Result",
		Detail: fmt.Sprintf("%s, oops, the roll was %d. Better luck next time!", nick, roll),
		Delta:  -bet,
	}
}
