package ai

import (
	"fmt"

	"github.com/shawnwan47/texas-cfr-dashboard/pkg/poker"
)

// Advisor turns raw engine decisions into player-facing recommendations.
// It resolves the engine's "check means call" overloading (a check with an
// amount becomes call, a raise becomes bet) and, once the flop is visible,
// extends the explanation with the evaluated hand.
type Advisor struct {
	engine Engine
}

// NewAdvisor creates an advisor over the given engine.
func NewAdvisor(engine Engine) *Advisor {
	return &Advisor{engine: engine}
}

// Advise computes the recommended action for the given bet state. hole and
// community are used only to describe the current hand; the decision
// itself is a pure function of the snapshot.
func (a *Advisor) Advise(snapshot Snapshot, hole, community []poker.Card) (Decision, error) {
	decision, err := a.engine.Decide(snapshot)
	if err != nil {
		return Decision{}, err
	}

	switch decision.Action {
	case ActionCheck:
		if decision.Amount > 0 {
			decision.Action = ActionCall
		}
	case ActionRaise:
		decision.Action = ActionBet
	}

	if hand, ok := poker.EvaluateHand(append(poker.CopyCards(hole), community...)); ok {
		decision.Explanation = fmt.Sprintf("%s; current hand: %s", decision.Explanation, hand.Description)
	}

	return decision, nil
}
