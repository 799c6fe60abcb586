package engine

import (
	"strings"

	"github.com/Veraticus/hireflow/internal/command"
)

// GateState says whether a command is waiting for confirmation.
type GateState int

// Gate states.
const (
	Idle GateState = iota
	AwaitingConfirmation
)

func (s GateState) String() string {
	if s == AwaitingConfirmation {
		return "awaiting confirmation"
	}
	return "idle"
}

// Gate holds at most one command waiting for a yes/no answer.
type Gate struct {
	pending command.Gated
}

// State reports the current gate state.
func (g *Gate) State() GateState {
	if g.pending == nil {
		return Idle
	}
	return AwaitingConfirmation
}

// Park stores c until the next answer, replacing anything already parked.
func (g *Gate) Park(c command.Gated) {
	g.pending = c
}

// Take returns the parked command, if any, and empties the gate.
func (g *Gate) Take() (command.Gated, bool) {
	c := g.pending
	g.pending = nil
	return c, c != nil
}

// Confirms reports whether answer accepts a pending command: "yes" in any
// case, surrounded by any whitespace.
func Confirms(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
