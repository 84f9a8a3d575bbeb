package poker

import (
	"strings"
	"testing"
)

func TestEvaluateHandPair(t *testing.T) {
	cards := []Card{
		NewCard(Spades, Ace),
		NewCard(Hearts, Ace),
		NewCard(Diamonds, Seven),
		NewCard(Clubs, Four),
		NewCard(Spades, Two),
	}

	hs, ok := EvaluateHand(cards)
	if !ok {
		t.Fatal("Expected evaluation to succeed with 5 distinct cards")
	}
	if hs.Rank != Pair {
		t.Errorf("Expected Pair, got %v", hs.Rank)
	}
	if !strings.Contains(hs.Description, "Pair") {
		t.Errorf("Expected description naming a pair, got %q", hs.Description)
	}
}

func TestEvaluateHandFlush(t *testing.T) {
	cards := []Card{
		NewCard(Hearts, Ace),
		NewCard(Hearts, Ten),
		NewCard(Hearts, Seven),
		NewCard(Hearts, Four),
		NewCard(Hearts, Two),
	}

	hs, ok := EvaluateHand(cards)
	if !ok {
		t.Fatal("Expected evaluation to succeed")
	}
	if hs.Rank != Flush {
		t.Errorf("Expected Flush, got %v", hs.Rank)
	}
}

func TestEvaluateHandTooFewCards(t *testing.T) {
	cards := []Card{NewCard(Spades, Ace), NewCard(Hearts, King)}
	if _, ok := EvaluateHand(cards); ok {
		t.Error("Expected evaluation to fail with only hole cards")
	}
}

// Independently drawn boards can repeat a card; the evaluator's lookup
// tables assume a real deck, so such hands are reported unrankable.
func TestEvaluateHandRejectsDuplicates(t *testing.T) {
	cards := []Card{
		NewCard(Spades, Ace),
		NewCard(Spades, Ace),
		NewCard(Diamonds, Seven),
		NewCard(Clubs, Four),
		NewCard(Spades, Two),
	}
	if _, ok := EvaluateHand(cards); ok {
		t.Error("Expected evaluation to fail with a duplicated card")
	}
}
