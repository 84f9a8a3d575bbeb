package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shawnwan47/texas-cfr-dashboard/pkg/poker"
	"github.com/shawnwan47/texas-cfr-dashboard/pkg/server"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).MarginLeft(2)
	cardStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("140")).MarginTop(1)
	historyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
)

// model is the bubbletea model for a local heads-up game against the
// heuristic AI.
type model struct {
	engine *server.GameEngine

	sessionID string
	state     *server.GameState
	advice    *server.AIDecisionResult

	// Pending amount entry for call/bet, "" when not entering one.
	entering string
	amount   string

	errMsg string
}

func newModel(engine *server.GameEngine) model {
	return model{engine: engine}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	key := keyMsg.String()

	if key == "ctrl+c" || (key == "q" && m.entering == "") {
		return m, tea.Quit
	}

	// Amount entry mode for call/bet.
	if m.entering != "" {
		switch key {
		case "enter":
			m.submitAmount()
		case "esc":
			m.entering, m.amount = "", ""
		case "backspace":
			if len(m.amount) > 0 {
				m.amount = m.amount[:len(m.amount)-1]
			}
		default:
			if len(key) == 1 && key >= "0" && key <= "9" {
				m.amount += key
			}
		}
		return m, nil
	}

	switch key {
	case "n":
		m.startGame()
	case "c":
		m.check()
	case "f":
		m.fold()
	case "a":
		if m.requireGame() {
			m.entering, m.amount = "call", ""
		}
	case "b":
		if m.requireGame() {
			m.entering, m.amount = "bet", ""
		}
	case "d":
		m.fetchAdvice()
	}
	return m, nil
}

func (m *model) startGame() {
	state, err := m.engine.StartGame()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.sessionID = state.SessionID
	m.state = state
	m.advice = nil
	m.errMsg = ""
}

func (m *model) refresh() {
	if m.sessionID == "" {
		return
	}
	state, err := m.engine.State(m.sessionID)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.state = state
}

func (m *model) check() {
	if !m.requireGame() {
		return
	}
	if _, err := m.engine.Check(m.sessionID); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.refresh()
}

func (m *model) fold() {
	if !m.requireGame() {
		return
	}
	if _, err := m.engine.Fold(m.sessionID); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.refresh()
}

func (m *model) fetchAdvice() {
	if !m.requireGame() {
		return
	}
	advice, err := m.engine.AIDecision(m.sessionID)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.advice = advice
	m.errMsg = ""
}

func (m *model) submitAmount() {
	action := m.entering
	amount, err := strconv.ParseInt(m.amount, 10, 64)
	m.entering, m.amount = "", ""
	if err != nil {
		m.errMsg = "enter a whole number of chips"
		return
	}

	switch action {
	case "call":
		_, err = m.engine.Call(m.sessionID, amount)
	case "bet":
		_, err = m.engine.Bet(m.sessionID, amount)
	}
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.refresh()
}

func (m *model) requireGame() bool {
	if m.sessionID == "" {
		m.errMsg = "press n to start a hand"
		return false
	}
	return true
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Texas CFR Dashboard - heads-up demo"))
	b.WriteString("\n\n")

	if m.state == nil {
		b.WriteString(helpStyle.Render("n: new hand  q: quit"))
		return b.String()
	}

	s := m.state
	b.WriteString(fmt.Sprintf("  Session: %s  Status: %s\n\n", s.SessionID, s.Status))
	b.WriteString("  Your hand:  " + cardStyle.Render(cardsLine(s.PlayerHand)) + "\n")
	if len(s.CommunityCards) > 0 {
		b.WriteString("  Board:      " + cardStyle.Render(cardsLine(s.CommunityCards)) + "\n")
	}

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"  Pot: %d   Your bet: %d (chips %d)   AI bet: %d (chips %d)",
		s.Pot, s.PlayerBet, s.PlayerChips, s.AIBet, s.AIChips)))
	b.WriteString("\n\n")

	start := 0
	if len(s.GameHistory) > 8 {
		start = len(s.GameHistory) - 8
	}
	for _, line := range s.GameHistory[start:] {
		b.WriteString(historyStyle.Render("  "+line) + "\n")
	}

	if m.advice != nil {
		b.WriteString(infoStyle.Render(fmt.Sprintf(
			"  Advisor: %s %d (%.0f%%) - %s",
			m.advice.Action, m.advice.Amount, m.advice.Confidence*100, m.advice.Explanation)))
		b.WriteString("\n")
	}

	if m.entering != "" {
		b.WriteString(fmt.Sprintf("\n  %s amount: %s_  (enter to confirm, esc to cancel)\n", m.entering, m.amount))
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("  "+m.errMsg) + "\n")
	}

	b.WriteString(helpStyle.Render("  n: new hand  c: check  a: call  b: bet  f: fold  d: ai advice  q: quit"))
	return b.String()
}

func cardsLine(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
