package game

import (
	"context"
	"fmt"
	"strings"
)

const (
	slotRows   = 3
	slotCols   = 3
	slotFrames = 5
)

// Duplicate entries in the pool encode draw weight: a symbol listed three
// times is three times as likely per cell.
var slotPool = []string{"🍒", "🍋", "🔔", "💎", "🍀", "🍉", "⭐", "🍒", "🍀", "🍒", "🍀"}

// Payout multiplier for a full row of the symbol.
var slotPayouts = map[string]int64{
	"🍒": 2,
	"🍋": 4,
	"🔔": 5,
	"💎": 10,
	"🍀": 8,
	"🍉": 6,
	"⭐": 20,
}

// Scatter symbols pay a small fixed bonus if they appear anywhere in the
// grid, at most once per spin.
var slotScatter = map[string]bool{"🍒": true, "🍀": true, "🍉": true}

type slotGrid [slotRows][slotCols]string

func drawGrid(rng Rand) slotGrid {
	var g slotGrid
	for r := 0; r < slotRows; r++ {
		for c := 0; c < slotCols; c++ {
			g[r][c] = slotPool[rng.Intn(len(slotPool))]
		}
	}
	return g
}

func (g slotGrid) render() string {
	lines := make([]string, 0, slotRows)
	for _, row := range g {
		lines = append(lines, strings.Join(row[:], " | "))
	}
	return strings.Join(lines, "\n")
}

// scoreGrid applies the three win tiers to the final grid and returns the
// total credit plus the annotations to display. Tiers stack: every full row
// pays, every exactly-two row pays, and the scatter bonus pays once.
func scoreGrid(g slotGrid, bet int64) (int64, []Field) {
	var credit int64
	var fields []Field

	for _, row := range g {
		if row[0] == row[1] && row[1] == row[2] {
			win := bet * slotPayouts[row[0]]
			credit += win
			fields = append(fields, Field{Name: "Jackpot!", Value: fmt.Sprintf("full row of %s, you won %d!", row[0], win)})
		}
	}

	var partial int64
	for _, row := range g {
		full := row[0] == row[1] && row[1] == row[2]
		pair := row[0] == row[1] || row[1] == row[2] || row[0] == row[2]
		if pair && !full {
			partial += bet * 8 / 10
		}
	}
	if partial > 0 {
		credit += partial
		fields = append(fields, Field{Name: "Small Win!", Value: fmt.Sprintf("two symbols matched in a row! You won %d.", partial)})
	}

	scatter := false
	for _, row := range g {
		for _, sym := range row {
			if slotScatter[sym] {
				scatter = true
			}
		}
	}
	if scatter {
		win := bet / 3
		credit += win
		fields = append(fields, Field{Name: "Ultra-Small Win!", Value: fmt.Sprintf("special symbols appeared! You won %d.", win)})
	}

	if len(fields) == 0 {
		fields = append(fields, Field{Name: "Better Luck Next Time!", Value: "no win this time."})
	}
	return credit, fields
}

// Slots debits the stake up front, animates a short sequence of grids by
// editing one message, and scores only the final grid. The returned delta is
// the net of the stake and all credits.
func (e *Engine) Slots(ctx context.Context, ch Channel, nick string, bet int64, rng Rand) Outcome {
	msgID, _ := ch.Send(ctx, Outcome{
		Title:  "Slot Machine 🎰",
		Detail: fmt.Sprintf("%s, spinning...", nick),
	})

	var final slotGrid
	for i := 0; i < slotFrames; i++ {
		final = drawGrid(rng)
		_ = ch.Edit(ctx, msgID, Outcome{
			Title:  "Slot Machine 🎰",
			Detail: final.render(),
		})
		if i < slotFrames-1 {
			if err := sleep(ctx, e.frameDelay); err != nil {
				break
			}
		}
	}

	credit, fields := scoreGrid(final, bet)
	return Outcome{
		Title:  "Slot Machine Result 🎰",
		Detail: final.render(),
		Delta:  credit - bet,
		Fields: fields,
	}
}
