package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decred/slog"

	"github.com/shawnwan47/texas-cfr-dashboard/pkg/ai"
	"github.com/shawnwan47/texas-cfr-dashboard/pkg/poker"
	"github.com/shawnwan47/texas-cfr-dashboard/pkg/server"
)

func main() {
	var seed int64
	flag.Int64Var(&seed, "seed", 0, "Deterministic RNG seed (0 = random)")
	flag.Parse()

	// The client drives the engine in-process; logs would tear up the
	// TUI, so they are disabled.
	engine := server.NewGameEngine(server.GameEngineConfig{
		Log:   slog.Disabled,
		Store: server.NewSessionStore(slog.Disabled),
		Cards: poker.NewGenerator(seed),
		AI:    ai.NewHeuristicEngine(seed),
	})

	p := tea.NewProgram(newModel(engine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running UI: %v\n", err)
		os.Exit(1)
	}
}
