package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/decred/slog"

	"github.com/shawnwan47/texas-cfr-dashboard/pkg/server"
)

// api is the thin HTTP JSON adapter over the game engine. It owns no game
// logic: it decodes the session id and amount, dispatches one engine
// operation, and maps sentinel errors onto status codes.
type api struct {
	log    slog.Logger
	engine *server.GameEngine
}

func (a *api) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/games", a.handleStartGame)
	mux.HandleFunc("GET /v1/games/{id}", a.handleGameState)
	mux.HandleFunc("POST /v1/games/{id}/fold", a.handleFold)
	mux.HandleFunc("POST /v1/games/{id}/check", a.handleCheck)
	mux.HandleFunc("POST /v1/games/{id}/call", a.handleCall)
	mux.HandleFunc("POST /v1/games/{id}/bet", a.handleBet)
	mux.HandleFunc("GET /v1/games/{id}/ai-decision", a.handleAIDecision)
	mux.HandleFunc("POST /v1/cleanup", a.handleCleanup)
	return mux
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *api) handleStartGame(w http.ResponseWriter, r *http.Request) {
	state, err := a.engine.StartGame()
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, state)
}

func (a *api) handleGameState(w http.ResponseWriter, r *http.Request) {
	state, err := a.engine.State(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, state)
}

func (a *api) handleFold(w http.ResponseWriter, r *http.Request) {
	res, err := a.engine.Fold(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *api) handleCheck(w http.ResponseWriter, r *http.Request) {
	res, err := a.engine.Check(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *api) handleCall(w http.ResponseWriter, r *http.Request) {
	amount, ok := a.decodeAmount(w, r)
	if !ok {
		return
	}
	res, err := a.engine.Call(r.PathValue("id"), amount)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *api) handleBet(w http.ResponseWriter, r *http.Request) {
	amount, ok := a.decodeAmount(w, r)
	if !ok {
		return
	}
	res, err := a.engine.Bet(r.PathValue("id"), amount)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *api) handleAIDecision(w http.ResponseWriter, r *http.Request) {
	res, err := a.engine.AIDecision(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *api) handleCleanup(w http.ResponseWriter, r *http.Request) {
	remaining := a.engine.CleanupSessions()
	a.writeJSON(w, http.StatusOK, map[string]int{"activeSessions": remaining})
}

func (a *api) decodeAmount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return 0, false
	}
	return req.Amount, true
}

func (a *api) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, server.ErrSessionNotFound):
		code = http.StatusNotFound
	case errors.Is(err, server.ErrInsufficientChips):
		code = http.StatusPaymentRequired
	case errors.Is(err, server.ErrInvalidAmount):
		code = http.StatusBadRequest
	case errors.Is(err, server.ErrHandFinished):
		code = http.StatusConflict
	}
	a.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (a *api) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Errorf("Failed to encode response: %v", err)
	}
}
