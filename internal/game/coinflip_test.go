package game

import (
	"context"
	"testing"
)

func TestParseCoinGuess(t *testing.T) {
	tests := []struct {
		in   string
		want CoinGuess
	}{
		{"h", GuessHeads},
		{"H", GuessHeads},
		{"heads", GuessHeads},
		{" h ", GuessHeads},
		{"t", GuessTails},
		{"tails", GuessTails},
		{"TAILS", GuessTails},
		{"", GuessInvalid},
		{"x", GuessInvalid},
		{"head", GuessInvalid},
		{"42", GuessInvalid},
	}
	for _, tt := range tests {
		if got := ParseCoinGuess(tt.in); got != tt.want {
			t.Errorf("ParseCoinGuess(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCoinflip_Win(t *testing.T) {
	ch := &fakeChannel{inputs: []string{"h"}}
	rng := &fakeRand{vals: []int{0}} // heads

	out := testEngine().Coinflip(context.Background(), ch, "alice", 100, rng)

	if out.Rejected {
		t.Fatal("winning round was rejected")
	}
	if out.Delta != 100 {
		t.Errorf("Delta = %d, want 100", out.Delta)
	}
}

func TestCoinflip_Lose(t *testing.T) {
	ch := &fakeChannel{inputs: []string{"t"}}
	rng := &fakeRand{vals: []int{0}} // heads

	out := testEngine().Coinflip(context.Background(), ch, "alice", 100, rng)

	if out.Delta != -100 {
		t.Errorf("Delta = %d, want -100", out.Delta)
	}
}

func TestCoinflip_InvalidGuessRejects(t *testing.T) {
	ch := &fakeChannel{inputs: []string{"garbage"}}
	rng := &fakeRand{vals: []int{0}}

	out := testEngine().Coinflip(context.Background(), ch, "alice", 100, rng)

	if !out.Rejected {
		t.Fatal("garbage guess was not rejected")
	}
	if out.Delta != 0 {
		t.Errorf("rejected round carried delta %d", out.Delta)
	}
}

func TestCoinflip_TimeoutRejects(t *testing.T) {
	ch := &fakeChannel{}
	rng := &fakeRand{vals: []int{0}}

	out := testEngine().Coinflip(context.Background(), ch, "alice", 100, rng)

	if !out.Rejected || out.Delta != 0 {
		t.Errorf("timeout outcome = %+v, want rejected with no delta", out)
	}
}
