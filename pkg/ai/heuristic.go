package ai

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// HeuristicEngine is the built-in stateless betting heuristic. One uniform
// random value is drawn per decision and the first matching branch wins:
// fold large bets sometimes, mix raises and checks when there is nothing
// to call, lean on pot odds otherwise.
type HeuristicEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewHeuristicEngine creates a heuristic engine with the given seed
// (time-based if zero).
func NewHeuristicEngine(seed int64) *HeuristicEngine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &HeuristicEngine{rng: rand.New(rand.NewSource(seed))}
}

// Decide implements Engine.
func (h *HeuristicEngine) Decide(snapshot Snapshot) (Decision, error) {
	call := snapshot.CallAmount()

	h.mu.Lock()
	r := h.rng.Float64()
	h.mu.Unlock()

	// Facing a bet that would cost more than 60% of the stack, fold
	// most of the time.
	if float64(call) > 0.6*float64(snapshot.AIChips) && r > 0.7 {
		return Decision{
			Action:      ActionFold,
			Confidence:  0.8,
			Explanation: fmt.Sprintf("facing %d into a %d stack is too expensive", call, snapshot.AIChips),
		}, nil
	}

	// Nothing to call: mostly check, occasionally raise between 30% and
	// 80% of the pot.
	if call == 0 {
		if r > 0.6 {
			amount := int64(math.Floor(float64(snapshot.Pot) * (0.3 + r*0.5)))
			if amount > snapshot.AIChips {
				amount = snapshot.AIChips
			}
			return Decision{
				Action:      ActionRaise,
				Amount:      amount,
				Confidence:  0.6,
				Explanation: fmt.Sprintf("no bet to match, raising %d into a pot of %d", amount, snapshot.Pot),
			}, nil
		}
		return Decision{
			Action:      ActionCheck,
			Confidence:  0.7,
			Explanation: "no bet to match, checking",
		}, nil
	}

	// "check" with an amount means call; see Action docs.
	if snapshot.PotOdds() > 3 && r > 0.4 {
		return Decision{
			Action:      ActionCheck,
			Amount:      call,
			Confidence:  0.7,
			Explanation: fmt.Sprintf("pot odds %.1f make calling %d attractive", snapshot.PotOdds(), call),
		}, nil
	}

	return Decision{
		Action:      ActionCheck,
		Amount:      call,
		Confidence:  0.6,
		Explanation: fmt.Sprintf("calling %d to stay in the hand", call),
	}, nil
}
