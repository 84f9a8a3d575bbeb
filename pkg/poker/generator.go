package poker

import (
	"math/rand"
	"sync"
	"time"
)

// Generator draws cards with rank and suit picked independently and
// uniformly on every call. There is no shared deck: the same card may be
// drawn more than once within a hand. Sessions are dealt this way on
// purpose; callers that need without-replacement semantics need a real
// deck, not this.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator with the given seed (or a time-based
// seed if zero, matching how games seed their decks).
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Draw returns a single card with uniformly random value and suit.
func (g *Generator) Draw() Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Card{
		value: values[g.rng.Intn(len(values))],
		suit:  suits[g.rng.Intn(len(suits))],
	}
}

// DrawN draws n cards in order.
func (g *Generator) DrawN(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = g.Draw()
	}
	return cards
}
