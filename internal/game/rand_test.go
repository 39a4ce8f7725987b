package game

import "testing"

func TestFairSource_Deterministic(t *testing.T) {
	a := NewFairSource("server-seed", "player-1")
	b := NewFairSource("server-seed", "player-1")

	for i := 0; i < 100; i++ {
		av, bv := a.Intn(10), b.Intn(10)
		if av != bv {
			t.Fatalf("draw %d: sources diverged, %d != %d", i, av, bv)
		}
		if av < 0 || av >= 10 {
			t.Fatalf("draw %d: %d out of range [0,10)", i, av)
		}
	}
}

func TestFairSource_SeedsChangeStream(t *testing.T) {
	a := NewFairSource("seed-a", "player-1")
	b := NewFairSource("seed-b", "player-1")

	same := true
	for i := 0; i < 32; i++ {
		if a.Intn(1000000) != b.Intn(1000000) {
			same = false
			break
		}
	}
	if same {
		t.Error("different server seeds produced identical draw streams")
	}
}

func TestFairSource_IntnPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Intn(0) did not panic")
		}
	}()
	NewFairSource("s", "c").Intn(0)
}

func TestGenerateSeed(t *testing.T) {
	a, b := GenerateSeed(), GenerateSeed()
	if len(a) != 64 {
		t.Errorf("seed length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Error("two generated seeds are identical")
	}
}

func TestCommitment(t *testing.T) {
	seed := "8c41e1d1a6f8a45f"
	c1, c2 := Commitment(seed), Commitment(seed)
	if c1 != c2 {
		t.Error("commitment is not deterministic")
	}
	if len(c1) != 64 {
		t.Errorf("commitment length = %d, want 64 hex chars", len(c1))
	}
	if Commitment("other") == c1 {
		t.Error("distinct seeds share a commitment")
	}
}
