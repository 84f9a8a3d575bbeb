package server

import (
	"sync"
	"time"

	"github.com/shawnwan47/texas-cfr-dashboard/pkg/poker"
)

// Status is the lifecycle state of a session. Only StatusPlaying and
// StatusFinished are reachable through the current operations; the
// remaining values are declared for the full hand lifecycle (multi-street
// betting and showdown resolution are not implemented in this core).
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusBetting  Status = "betting"
	StatusShowdown Status = "showdown"
	StatusFinished Status = "finished"
)

// Terminal reports whether no further betting action may mutate the
// session.
func (s Status) Terminal() bool {
	return s == StatusFinished
}

// Session is one in-progress hand between the player and the AI. All
// mutation happens through GameEngine operations holding mu for the full
// read-modify-write span; two operations racing on the same session
// serialize, operations on different sessions do not block each other.
type Session struct {
	mu sync.Mutex

	id        string
	status    Status
	createdAt time.Time

	// Hole cards are fixed at creation; communityCards grows 0 -> 3
	// exactly once when the flop is revealed.
	playerHand     []poker.Card
	aiHand         []poker.Card
	communityCards []poker.Card

	pot         int64
	playerBet   int64
	aiBet       int64
	playerChips int64
	aiChips     int64

	// gameHistory is append-only for the life of the hand.
	gameHistory []string
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// appendHistory adds one narrative line. Caller holds s.mu.
func (s *Session) appendHistory(line string) {
	s.gameHistory = append(s.gameHistory, line)
}

// historyCopy returns an independent copy of the history. Caller holds
// s.mu.
func (s *Session) historyCopy() []string {
	out := make([]string, len(s.gameHistory))
	copy(out, s.gameHistory)
	return out
}
