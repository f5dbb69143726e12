// Command collegebot runs the college-information chatbot API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/0xcro3dile/collegebot-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/collegebot-go/internal/adapters/llm"
	"github.com/0xcro3dile/collegebot-go/internal/adapters/store"
	"github.com/0xcro3dile/collegebot-go/internal/config"
	"github.com/0xcro3dile/collegebot-go/internal/domain/ports"
	"github.com/0xcro3dile/collegebot-go/internal/domain/usecases"
	infra "github.com/0xcro3dile/collegebot-go/internal/infrastructure/http"
	"github.com/0xcro3dile/collegebot-go/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "collegebot:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataStore, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	chain := buildChain(cfg, log)
	var completer ports.Completer
	if chain.Configured() {
		completer = chain
	} else {
		log.Warn("no provider credentials configured; /chat will report a configuration error")
	}

	answer := usecases.NewAnswerUseCase(dataStore, completer, log)
	server := infra.NewServer(answer, log, cfg.Server.Addr)

	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildStore constructs the configured DataStore backend.
func buildStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (ports.DataStore, func(), error) {
	switch cfg.Store.Backend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		log.Info("using sqlite store", zap.String("path", cfg.Store.SQLitePath))
		return s, func() { s.Close() }, nil

	case "snapshot":
		watcher, err := filewatcher.NewFSNotifyWatcher()
		if err != nil {
			return nil, nil, fmt.Errorf("creating watcher: %w", err)
		}
		s, err := store.NewSnapshotStore(cfg.Store.SnapshotPath, watcher, log)
		if err != nil {
			watcher.Stop()
			return nil, nil, fmt.Errorf("loading snapshot store: %w", err)
		}
		if err := s.Start(ctx); err != nil {
			watcher.Stop()
			return nil, nil, err
		}
		log.Info("using snapshot store", zap.String("path", cfg.Store.SnapshotPath))
		return s, func() { s.Stop() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// buildChain assembles the provider fallback chain from whatever
// credentials are present: Gemini first, then OpenAI.
func buildChain(cfg *config.Config, log *zap.Logger) *llm.Chain {
	chain := llm.NewChain(log)
	if cfg.LLM.GeminiAPIKey != "" {
		chain.Add("gemini", llm.NewGeminiClient(cfg.LLM.GeminiBaseURL, cfg.LLM.GeminiAPIKey, log))
	}
	if cfg.LLM.OpenAIAPIKey != "" {
		chain.Add("openai", llm.NewOpenAIClient(cfg.LLM.OpenAIBaseURL, cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIModel))
	}
	return chain
}
