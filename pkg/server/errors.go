package server

import "errors"

// Sentinel errors surfaced verbatim to the transport adapter. Callers
// discriminate with errors.Is; every failure leaves session state
// untouched.
var (
	// ErrSessionNotFound is returned by every operation except StartGame
	// when the session id has no live record.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInsufficientChips is returned when an amount exceeds the
	// player's available chips.
	ErrInsufficientChips = errors.New("insufficient chips")

	// ErrInvalidAmount is returned for negative chip amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrHandFinished is returned for any betting action on a session
	// whose hand already ended; only reads remain valid.
	ErrHandFinished = errors.New("hand already finished")
)
