package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/decred/slog"

	"github.com/shawnwan47/texas-cfr-dashboard/pkg/ai"
	"github.com/shawnwan47/texas-cfr-dashboard/pkg/poker"
	"github.com/shawnwan47/texas-cfr-dashboard/pkg/server"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Address to listen on")
	flag.StringVar(&cfg.DebugLevel, "debuglevel", cfg.DebugLevel, "Logging level: trace, debug, info, warn, error")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Deterministic RNG seed for cards and decisions (0 = random)")
	flag.StringVar(&cfg.ModelDir, "modeldir", cfg.ModelDir, "Directory of model checkpoints to register (empty = heuristic only)")
	flag.Parse()

	backend := slog.NewBackend(os.Stdout)
	level, ok := slog.LevelFromString(cfg.DebugLevel)
	if !ok {
		level = slog.LevelInfo
	}
	newLogger := func(tag string) slog.Logger {
		log := backend.Logger(tag)
		log.SetLevel(level)
		return log
	}
	log := newLogger("SRVR")

	engine := buildEngine(cfg, newLogger)

	a := &api{log: log, engine: engine}
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      a.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Expired sessions are swept hourly; the 24h expiry itself is fixed
	// in the engine.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				engine.CleanupSessions()
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Infof("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Shutdown: %v", err)
		}
	}()

	log.Infof("Listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Errorf("Server error: %v", err)
		os.Exit(1)
	}
}

// buildEngine wires the session store, card generator and decision engine.
// With a model directory configured, every checkpoint in it is registered
// and the model-backed engine (no inference backend attached here, so it
// degrades to the heuristic) fronts the decision chain.
func buildEngine(cfg *Config, newLogger func(string) slog.Logger) *server.GameEngine {
	aiLog := newLogger("AI")

	var engine ai.Engine
	heuristic := ai.NewHeuristicEngine(cfg.Seed)
	engine = heuristic

	if cfg.ModelDir != "" {
		cache, err := ai.NewModelCache(filepath.Join(cfg.ModelDir, ".model_cache"), cfg.MaxModels, aiLog)
		if err != nil {
			aiLog.Errorf("Model cache unavailable, using heuristic only: %v", err)
		} else {
			active := registerModels(cache, cfg.ModelDir, aiLog)
			if active != "" {
				model := ai.NewModelEngine(cache, active, nil)
				engine = ai.NewFallbackEngine(model, heuristic, aiLog)
			}
			stats := cache.Stats()
			aiLog.Infof("Model cache ready: %d/%d models, %d bytes",
				stats.TotalModels, stats.MaxModels, stats.TotalCacheSize)
		}
	}

	return server.NewGameEngine(server.GameEngineConfig{
		Log:   newLogger("GAME"),
		Store: server.NewSessionStore(newLogger("STOR")),
		Cards: poker.NewGenerator(cfg.Seed),
		AI:    engine,
	})
}

// registerModels registers every .pt checkpoint in dir and returns the
// first registered name.
func registerModels(cache *ai.ModelCache, dir string, log slog.Logger) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pt"))
	if err != nil {
		log.Errorf("Failed to scan model dir: %v", err)
		return ""
	}

	var first string
	for _, path := range matches {
		name, err := cache.Register(path, "")
		if err != nil {
			log.Warnf("Skipping model %s: %v", path, err)
			continue
		}
		if first == "" {
			first = name
		}
	}
	return first
}
