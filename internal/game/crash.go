package game

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Crash action tokens.
const (
	CashOutToken  = "cash"
	ContinueToken = "continue"
)

const (
	crashGrowth = 1.2 // multiplier advance per tick
	crashOdds   = 10  // one draw in ten crashes the round
)

// CrashState is a terminal state of the crash round. Every state except
// CrashCashedOut forfeits the stake.
type CrashState int

const (
	CrashRunning CrashState = iota
	CrashCashedOut
	CrashCrashed
	CrashTimedOut
	CrashInvalidAction
)

func (s CrashState) String() string {
	switch s {
	case CrashRunning:
		return "running"
	case CrashCashedOut:
		return "cashed_out"
	case CrashCrashed:
		return "crashed"
	case CrashTimedOut:
		return "timed_out"
	case CrashInvalidAction:
		return "invalid_action"
	default:
		return "unknown"
	}
}

// CrashResult is the terminal record of one crash round.
type CrashResult struct {
	State      CrashState
	Multiplier float64
	Payout     int64
	Ticks      int
}

// round2 keeps the multiplier at two decimal places between ticks.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Crash runs the escalating-multiplier game. The stake is at risk from the
// first tick; only an explicit cash-out pays floor(bet × multiplier).
func (e *Engine) Crash(ctx context.Context, ch Channel, nick string, bet int64, rng Rand) Outcome {
	res := e.runCrash(ctx, ch, nick, rng, bet)

	var out Outcome
	switch res.State {
	case CrashCashedOut:
		out = Outcome{
			Title:  "Cashed Out",
			Detail: fmt.Sprintf("%s, you cashed out! You won %d.", nick, res.Payout),
			Delta:  res.Payout - bet,
		}
	case CrashCrashed:
		out = Outcome{
			Title:  "Crash!",
			Detail: fmt.Sprintf("%s, the game crashed! You lost your wager.", nick),
			Delta:  -bet,
		}
	case CrashTimedOut:
		out = Outcome{
			Title:  "Timeout!",
			Detail: fmt.Sprintf("%s, you took too long to respond. The game has ended.", nick),
			Delta:  -bet,
		}
	default:
		out = Outcome{
			Title:  "Invalid Choice",
			Detail: fmt.Sprintf("%s, type '%s' or '%s'. Your wager is lost.", nick, CashOutToken, ContinueToken),
			Delta:  -bet,
		}
	}
	out.AddField("Multiplier", fmt.Sprintf("%.2fx after %d ticks", res.Multiplier, res.Ticks))
	return out
}

// runCrash drives the tick loop. The crash draw is evaluated before the
// action prompt each tick, so a crash always preempts an in-flight cash-out
// decision.
func (e *Engine) runCrash(ctx context.Context, ch Channel, nick string, rng Rand, bet int64) CrashResult {
	mult := 1.0
	ticks := 0

	msgID, _ := ch.Send(ctx, crashStatus(nick, mult))

	for {
		mult = round2(mult * crashGrowth)
		ticks++
		_ = ch.Edit(ctx, msgID, crashStatus(nick, mult))

		if rng.Intn(crashOdds) == 0 {
			return CrashResult{State: CrashCrashed, Multiplier: mult, Ticks: ticks}
		}

		in, err := ch.Await(ctx, e.inputTimeout)
		if err != nil {
			return CrashResult{State: CrashTimedOut, Multiplier: mult, Ticks: ticks}
		}
		// Consume the action so it cannot replay into a later tick.
		_ = ch.Delete(ctx, in.ID)

		switch strings.ToLower(strings.TrimSpace(in.Text)) {
		case CashOutToken:
			return CrashResult{
				State:      CrashCashedOut,
				Multiplier: mult,
				Payout:     int64(math.Floor(float64(bet) * mult)),
				Ticks:      ticks,
			}
		case ContinueToken:
			// next tick
		default:
			return CrashResult{State: CrashInvalidAction, Multiplier: mult, Ticks: ticks}
		}
	}
}

func crashStatus(nick string, mult float64) Outcome {
	return Outcome{
		Title: "Crash Game",
		Detail: fmt.Sprintf("%s, Current Multiplier: %.2fx\nType '%s' to cash out now or '%s' to keep playing.",
			nick, mult, CashOutToken, ContinueToken),
	}
}
