package server

import (
	"fmt"
	"math"
	"time"

	"github.com/decred/slog"

	"github.com/shawnwan47/texas-cfr-dashboard/pkg/ai"
	"github.com/shawnwan47/texas-cfr-dashboard/pkg/poker"
)

// Fixed hand parameters: blinds are posted at creation and starting stacks
// already have them deducted. Session expiry is not configurable at this
// level.
const (
	smallBlind    int64 = 10
	bigBlind      int64 = 10
	startingChips int64 = 1000

	// SessionMaxAge is how long a session lives before CleanupSessions
	// may sweep it.
	SessionMaxAge = 24 * time.Hour
)

// GameState is the full read projection of a session. The AI's hole cards
// are never projected.
type GameState struct {
	SessionID      string       `json:"sessionId"`
	Status         Status       `json:"status"`
	PlayerHand     []poker.Card `json:"playerHand"`
	CommunityCards []poker.Card `json:"communityCards"`
	Pot            int64        `json:"pot"`
	PlayerBet      int64        `json:"playerBet"`
	AIBet          int64        `json:"aiBet"`
	PlayerChips    int64        `json:"playerChips"`
	AIChips        int64        `json:"aiChips"`
	GameHistory    []string     `json:"gameHistory"`
}

// FoldResult is the outcome of Fold.
type FoldResult struct {
	Status      Status   `json:"status"`
	GameHistory []string `json:"gameHistory"`
	Result      string   `json:"result"`
}

// CheckResult is the outcome of Check: the AI's side of the exchange and
// any flop reveal.
type CheckResult struct {
	Status         Status       `json:"status"`
	GameHistory    []string     `json:"gameHistory"`
	Pot            int64        `json:"pot"`
	AIBet          int64        `json:"aiBet"`
	AIChips        int64        `json:"aiChips"`
	CommunityCards []poker.Card `json:"communityCards"`
}

// CallResult is the outcome of Call. No AI counter-action is generated on
// a call.
type CallResult struct {
	Status         Status       `json:"status"`
	GameHistory    []string     `json:"gameHistory"`
	Pot            int64        `json:"pot"`
	PlayerBet      int64        `json:"playerBet"`
	PlayerChips    int64        `json:"playerChips"`
	CommunityCards []poker.Card `json:"communityCards"`
}

// BetResult is the outcome of Bet, including the AI's response.
type BetResult struct {
	Status      Status   `json:"status"`
	GameHistory []string `json:"gameHistory"`
	Pot         int64    `json:"pot"`
	PlayerBet   int64    `json:"playerBet"`
	PlayerChips int64    `json:"playerChips"`
	AIBet       int64    `json:"aiBet"`
	AIChips     int64    `json:"aiChips"`
}

// AIDecisionResult is the advisory output of AIDecision.
type AIDecisionResult struct {
	Action      ai.Action `json:"action"`
	Amount      int64     `json:"amount"`
	Confidence  float64   `json:"confidence"`
	Explanation string    `json:"explanation"`
}

// GameEngineConfig carries the collaborators a GameEngine depends on.
type GameEngineConfig struct {
	Log   slog.Logger
	Store *SessionStore
	Cards *poker.Generator
	AI    ai.Engine
}

// GameEngine orchestrates one betting action at a time: it validates
// input, mutates the session under its lock, asks the decision engine for
// the AI's counter-action where the flow calls for one, appends history,
// and returns a projection. It owns no ambient state; everything is
// injected.
type GameEngine struct {
	log     slog.Logger
	store   *SessionStore
	cards   *poker.Generator
	ai      ai.Engine
	advisor *ai.Advisor
}

// NewGameEngine creates a game engine from its configuration.
func NewGameEngine(cfg GameEngineConfig) *GameEngine {
	return &GameEngine{
		log:     cfg.Log,
		store:   cfg.Store,
		cards:   cfg.Cards,
		ai:      cfg.AI,
		advisor: ai.NewAdvisor(cfg.AI),
	}
}

// StartGame creates a session: both sides receive two cards, blinds are
// posted, and the opening history is seeded.
func (g *GameEngine) StartGame() (*GameState, error) {
	s := &Session{
		status:         StatusPlaying,
		playerHand:     g.cards.DrawN(2),
		aiHand:         g.cards.DrawN(2),
		communityCards: []poker.Card{},
		pot:            smallBlind + bigBlind,
		playerBet:      smallBlind,
		aiBet:          bigBlind,
		playerChips:    startingChips - smallBlind,
		aiChips:        startingChips - bigBlind,
	}
	s.gameHistory = []string{
		"Game started",
		"Player hand dealt",
		"AI hand dealt",
		fmt.Sprintf("Player posts small blind %d", smallBlind),
		fmt.Sprintf("AI posts big blind %d", bigBlind),
	}

	id := g.store.Create(s)
	g.log.Infof("Started game %s", id)

	s.mu.Lock()
	defer s.mu.Unlock()
	return g.projectState(s), nil
}

// State returns the read-only projection of a session. Valid on finished
// hands.
func (g *GameEngine) State(sessionID string) (*GameState, error) {
	s, err := g.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return g.projectState(s), nil
}

// Fold ends the hand: the AI collects the entire pot. Terminal.
func (g *GameEngine) Fold(sessionID string) (*FoldResult, error) {
	s, err := g.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrHandFinished, sessionID)
	}

	s.status = StatusFinished
	s.aiChips += s.pot
	s.appendHistory(fmt.Sprintf("Player folds - AI wins the pot of %d", s.pot))
	g.log.Debugf("Session %s: player folded, AI wins %d", sessionID, s.pot)

	return &FoldResult{
		Status:      s.status,
		GameHistory: s.historyCopy(),
		Result:      "AI wins pot",
	}, nil
}

// Check passes the action to the AI. A check back from the AI on an
// unrevealed board deals the flop; a raise moves chips from the AI stack
// into the pot.
func (g *GameEngine) Check(sessionID string) (*CheckResult, error) {
	s, err := g.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrHandFinished, sessionID)
	}

	decision, err := g.ai.Decide(snapshot(s))
	if err != nil {
		return nil, fmt.Errorf("ai decision: %w", err)
	}
	s.appendHistory("Player checks")

	if decision.Action == ai.ActionRaise && decision.Amount > 0 {
		s.aiChips -= decision.Amount
		s.aiBet += decision.Amount
		s.pot += decision.Amount
		s.appendHistory(fmt.Sprintf("AI raises %d (confidence %d%%)", decision.Amount, confidencePct(decision.Confidence)))
		g.log.Debugf("Session %s: AI raised %d after check", sessionID, decision.Amount)
	} else {
		s.appendHistory("AI checks")
		g.revealFlopIfNeeded(s)
	}

	return &CheckResult{
		Status:         s.status,
		GameHistory:    s.historyCopy(),
		Pot:            s.pot,
		AIBet:          s.aiBet,
		AIChips:        s.aiChips,
		CommunityCards: poker.CopyCards(s.communityCards),
	}, nil
}

// Call moves the caller-supplied amount from the player's stack into the
// pot. The amount is trusted as the call size and deliberately not
// recomputed against aiBet-playerBet; it only has to be non-negative and
// covered by the player's stack. No AI counter-action is generated.
func (g *GameEngine) Call(sessionID string, amount int64) (*CallResult, error) {
	s, err := g.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrHandFinished, sessionID)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if amount > s.playerChips {
		return nil, fmt.Errorf("%w: call %d exceeds %d", ErrInsufficientChips, amount, s.playerChips)
	}

	s.playerChips -= amount
	s.playerBet += amount
	s.pot += amount
	s.appendHistory(fmt.Sprintf("Player calls %d", amount))
	g.revealFlopIfNeeded(s)

	return &CallResult{
		Status:         s.status,
		GameHistory:    s.historyCopy(),
		Pot:            s.pot,
		PlayerBet:      s.playerBet,
		PlayerChips:    s.playerChips,
		CommunityCards: poker.CopyCards(s.communityCards),
	}, nil
}

// Bet places a player bet and resolves the AI's response: fold (hand ends,
// the player is refunded the pot minus their own just-placed bet), call
// (the AI tops up to match the player's total), or raise.
func (g *GameEngine) Bet(sessionID string, amount int64) (*BetResult, error) {
	s, err := g.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrHandFinished, sessionID)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if amount > s.playerChips {
		return nil, fmt.Errorf("%w: bet %d exceeds %d", ErrInsufficientChips, amount, s.playerChips)
	}

	// Decide on the post-bet state before mutating so an engine failure
	// leaves the session untouched.
	snap := snapshot(s)
	snap.PlayerChips -= amount
	snap.PlayerBet += amount
	snap.Pot += amount
	decision, err := g.ai.Decide(snap)
	if err != nil {
		return nil, fmt.Errorf("ai decision: %w", err)
	}

	s.playerChips -= amount
	s.playerBet += amount
	s.pot += amount
	s.appendHistory(fmt.Sprintf("Player bets %d", amount))

	switch decision.Action {
	case ai.ActionFold:
		s.status = StatusFinished
		refund := s.pot - amount
		s.playerChips += refund
		s.appendHistory(fmt.Sprintf("AI folds - player wins %d (confidence %d%%)", refund, confidencePct(decision.Confidence)))
		g.log.Debugf("Session %s: AI folded to bet %d, refunded %d", sessionID, amount, refund)

	case ai.ActionRaise:
		s.aiChips -= decision.Amount
		s.aiBet += decision.Amount
		s.pot += decision.Amount
		s.appendHistory(fmt.Sprintf("AI raises %d (confidence %d%%)", decision.Amount, confidencePct(decision.Confidence)))

	default:
		// "check" from the engine means call here: top the AI up to the
		// player's total bet.
		aiCall := s.playerBet - s.aiBet
		if aiCall < 0 {
			aiCall = 0
		}
		s.aiChips -= aiCall
		s.aiBet += aiCall
		s.pot += aiCall
		s.appendHistory(fmt.Sprintf("AI calls %d (confidence %d%%)", aiCall, confidencePct(decision.Confidence)))
	}

	return &BetResult{
		Status:      s.status,
		GameHistory: s.historyCopy(),
		Pot:         s.pot,
		PlayerBet:   s.playerBet,
		PlayerChips: s.playerChips,
		AIBet:       s.aiBet,
		AIChips:     s.aiChips,
	}, nil
}

// AIDecision returns the advisory recommendation for the current bet
// state without mutating the session. Valid on finished hands.
func (g *GameEngine) AIDecision(sessionID string) (*AIDecisionResult, error) {
	s, err := g.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	snap := snapshot(s)
	hole := poker.CopyCards(s.aiHand)
	community := poker.CopyCards(s.communityCards)
	s.mu.Unlock()

	decision, err := g.advisor.Advise(snap, hole, community)
	if err != nil {
		return nil, fmt.Errorf("ai decision: %w", err)
	}

	return &AIDecisionResult{
		Action:      decision.Action,
		Amount:      decision.Amount,
		Confidence:  decision.Confidence,
		Explanation: decision.Explanation,
	}, nil
}

// CleanupSessions sweeps expired sessions and returns the number of live
// sessions remaining after the sweep.
func (g *GameEngine) CleanupSessions() int {
	remaining := g.store.Sweep(SessionMaxAge)
	g.log.Infof("Session sweep complete, %d sessions remaining", remaining)
	return remaining
}

// revealFlopIfNeeded deals the one-time three-card flop. Caller holds
// s.mu.
func (g *GameEngine) revealFlopIfNeeded(s *Session) {
	if len(s.communityCards) != 0 {
		return
	}
	s.communityCards = g.cards.DrawN(3)
	s.appendHistory(fmt.Sprintf("Flop revealed: %s %s %s",
		s.communityCards[0], s.communityCards[1], s.communityCards[2]))
}

// projectState builds the full projection. Caller holds s.mu.
func (g *GameEngine) projectState(s *Session) *GameState {
	return &GameState{
		SessionID:      s.id,
		Status:         s.status,
		PlayerHand:     poker.CopyCards(s.playerHand),
		CommunityCards: poker.CopyCards(s.communityCards),
		Pot:            s.pot,
		PlayerBet:      s.playerBet,
		AIBet:          s.aiBet,
		PlayerChips:    s.playerChips,
		AIChips:        s.aiChips,
		GameHistory:    s.historyCopy(),
	}
}

// snapshot captures the bet state for the decision engine. Caller holds
// s.mu.
func snapshot(s *Session) ai.Snapshot {
	return ai.Snapshot{
		PlayerBet:   s.playerBet,
		AIBet:       s.aiBet,
		AIChips:     s.aiChips,
		Pot:         s.pot,
		PlayerChips: s.playerChips,
	}
}

func confidencePct(confidence float64) int {
	return int(math.Round(confidence * 100))
}
