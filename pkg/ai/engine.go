// Package ai holds the betting-decision capability for the heads-up demo
// games. The game engine depends only on the Engine interface so the
// built-in heuristic can later be swapped for a model-backed implementation
// without touching the betting flow.
package ai

import "errors"

// Action is a betting action chosen by a decision engine.
//
// Engines report "check" both for a true check and for a call; when the
// snapshot carries an amount to match, a check decision with Amount > 0
// means "call that amount". This mirrors the inference service's output
// and is translated at the advisory boundary, not here.
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionBet   Action = "bet"
	ActionRaise Action = "raise"
)

// Snapshot is the bet state a decision is computed from. It is a plain
// value copy; engines never see or mutate live session state.
type Snapshot struct {
	PlayerBet   int64
	AIBet       int64
	AIChips     int64
	Pot         int64
	PlayerChips int64
}

// CallAmount returns the chips needed to match the player's bet.
func (s Snapshot) CallAmount() int64 {
	if d := s.PlayerBet - s.AIBet; d > 0 {
		return d
	}
	return 0
}

// PotOdds returns pot / callAmount, or 0 when there is nothing to call.
func (s Snapshot) PotOdds() float64 {
	call := s.CallAmount()
	if call == 0 {
		return 0
	}
	return float64(s.Pot) / float64(call)
}

// Decision is an engine's chosen action. Confidence is advisory only,
// in [0,1], with no probabilistic guarantee.
type Decision struct {
	Action      Action
	Amount      int64
	Confidence  float64
	Explanation string
}

// Engine maps a bet-state snapshot to a decision. Implementations must be
// safe for concurrent use; decisions are computed inside per-session
// critical sections across many sessions at once.
type Engine interface {
	Decide(snapshot Snapshot) (Decision, error)
}

// ErrModelUnavailable is returned by the model-backed engine when no
// inference backend is attached or the named model is not loaded.
var ErrModelUnavailable = errors.New("model unavailable")
