package poker

import (
	evaluator "github.com/chehsunliu/poker"
)

// HandRank represents the rank of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// HandStrength is an advisory evaluation of the best hand a set of cards
// makes. It feeds decision explanations only; nothing in the betting flow
// settles on it.
type HandStrength struct {
	Rank        HandRank
	Description string
}

// convertCard converts our Card type to the chehsunliu/poker Card type
func convertCard(card Card) evaluator.Card {
	var rankChar byte
	switch card.value {
	case Ten:
		rankChar = 'T'
	case Jack:
		rankChar = 'J'
	case Queen:
		rankChar = 'Q'
	case King:
		rankChar = 'K'
	case Ace:
		rankChar = 'A'
	default:
		rankChar = card.value[0]
	}

	var suitChar byte
	switch card.suit {
	case Spades:
		suitChar = 's'
	case Hearts:
		suitChar = 'h'
	case Diamonds:
		suitChar = 'd'
	case Clubs:
		suitChar = 'c'
	}

	return evaluator.NewCard(string([]byte{rankChar, suitChar}))
}

// convertRankClass converts chehsunliu rank class to our HandRank.
// NOTE: in chehsunliu/poker, lower rank values are better, and a royal
// flush classifies as a straight flush.
func convertRankClass(rankClass int32) HandRank {
	switch rankClass {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return Pair
	default:
		return HighCard
	}
}

// EvaluateHand evaluates the best 5-card hand the given cards make.
// Requires at least 5 distinct cards (hole cards plus a revealed flop);
// with fewer, or with repeated cards from the independent-draw generator,
// it reports ok == false since the evaluator's lookup tables only cover
// real decks.
func EvaluateHand(cards []Card) (HandStrength, bool) {
	if len(cards) < 5 {
		return HandStrength{}, false
	}
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return HandStrength{}, false
		}
		seen[c] = true
	}

	converted := make([]evaluator.Card, len(cards))
	for i, c := range cards {
		converted[i] = convertCard(c)
	}

	rank := evaluator.Evaluate(converted)
	return HandStrength{
		Rank:        convertRankClass(evaluator.RankClass(rank)),
		Description: evaluator.RankString(rank),
	}, true
}
