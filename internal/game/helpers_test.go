package game

import (
	"context"
	"fmt"
	"time"
)

// fakeRand serves a scripted sequence of draws, reduced modulo n.
type fakeRand struct {
	vals []int
	pos  int
}

func (r *fakeRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.pos%len(r.vals)]
	r.pos++
	return v % n
}

// fakeChannel serves scripted player inputs and records everything the
// engine renders. An exhausted input script behaves as a timeout.
type fakeChannel struct {
	inputs []string
	pos    int

	sent    []Outcome
	edits   []Outcome
	deleted []MessageID
	awaits  int
}

func (c *fakeChannel) Send(ctx context.Context, o Outcome) (MessageID, error) {
	c.sent = append(c.sent, o)
	return MessageID(fmt.Sprintf("m%d", len(c.sent))), nil
}

func (c *fakeChannel) Edit(ctx context.Context, id MessageID, o Outcome) error {
	c.edits = append(c.edits, o)
	return nil
}

func (c *fakeChannel) Delete(ctx context.Context, id MessageID) error {
	c.deleted = append(c.deleted, id)
	return nil
}

func (c *fakeChannel) Await(ctx context.Context, timeout time.Duration) (Input, error) {
	c.awaits++
	if c.pos >= len(c.inputs) {
		return Input{}, ErrTimeout
	}
	in := Input{ID: MessageID(fmt.Sprintf("i%d", c.pos)), Text: c.inputs[c.pos]}
	c.pos++
	return in, nil
}

func testEngine() *Engine {
	return NewEngine(time.Second, 0)
}
