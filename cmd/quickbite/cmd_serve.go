package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/quickbite/internal/delivery"
	"github.com/user/quickbite/internal/engine"
	"github.com/user/quickbite/internal/gateway"
	"github.com/user/quickbite/internal/nlu"
	"github.com/user/quickbite/internal/scheduler"
	"github.com/user/quickbite/internal/state"
	"github.com/user/quickbite/internal/telegram"
	"github.com/user/quickbite/internal/types"
	"github.com/user/quickbite/internal/webhook"
	"github.com/user/quickbite/pkg/llm"
	"github.com/user/quickbite/pkg/llm/ollama"
	"github.com/user/quickbite/pkg/llm/openai"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quickbite daemon",
	RunE:  runServe,
}

// newProvider builds the configured completion backend.
func newProvider(cfg *llm.Config, kind string) llm.Provider {
	if kind == "openai" {
		return openai.New(cfg)
	}
	return ollama.New(cfg)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}

	// Stores
	sessions := state.NewSessionStore(cfg.DataDir)
	orders := state.NewOrderStore(cfg.DataDir)
	customers := state.NewCustomerStore(cfg.DataDir)
	transcripts := state.NewTranscriptStore(cfg.DataDir)

	// LLM provider and NLU client
	provider := newProvider(&llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, cfg.LLM.Provider)
	nluClient := nlu.NewClient(provider, cfg.LLM.Model,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second, cfg.LLM.MaxPromptTokens)

	// Dialogue engine
	eng := engine.New(catalog, orders, customers, nluClient)

	// Gateway
	gw := gateway.New(sessions, int64(cfg.MaxConcurrent))
	processor := gateway.NewProcessor(eng, sessions, transcripts)
	gw.Queue.SetProcessor(processor.ProcessTurn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw.Start(ctx)
	defer gw.Stop()

	slog.Info("quickbite started",
		"data_dir", cfg.DataDir,
		"log_level", cfg.LogLevel,
		"max_concurrent", cfg.MaxConcurrent,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
	)

	// Delivery registry for outbound status notifications
	deliveryReg := delivery.NewRegistry()

	// Telegram adapter
	if cfg.Telegram.Token != "" {
		adapter, err := telegram.New(cfg.Telegram.Token, gw, catalog, sessions)
		if err != nil {
			return fmt.Errorf("create telegram adapter: %w", err)
		}
		go adapter.Start(ctx)
		slog.Info("telegram adapter started")

		deliveryReg.Register("telegram:", func(sessionKey, message string) error {
			return adapter.SendTo(sessionKey, message)
		})
	} else {
		slog.Warn("telegram adapter disabled (no token)")
	}

	// Helper: synchronously process a chat turn through the gateway.
	processChat := func(sessionKey, message string) (string, error) {
		done := make(chan string, 1)
		inbound := &types.InboundMessage{
			Source:     "http",
			SessionKey: types.SessionKey(sessionKey),
			UserID:     sessionKey,
			Text:       message,
		}
		if err := gw.HandleInbound(ctx, inbound, gateway.WithOnComplete(func(response string) {
			done <- response
		})); err != nil {
			return "", err
		}
		return <-done, nil
	}

	// Order status progression
	sched := scheduler.New(orders, func(sessionKey types.SessionKey, message string) {
		if err := deliveryReg.Deliver(string(sessionKey), message); err != nil {
			slog.Debug("status notification not delivered", "session_key", string(sessionKey), "error", err)
		}
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()
	slog.Info("scheduler started")

	// Webhook HTTP server
	if cfg.HTTP.Enabled {
		webhookSrv := webhook.NewServer(processChat, catalog, orders, sessions, transcripts)
		httpServer := &http.Server{
			Addr:    cfg.HTTP.Listen,
			Handler: webhookSrv,
		}
		go func() {
			slog.Info("webhook server started", "listen", cfg.HTTP.Listen)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("webhook server error", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			httpServer.Close()
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down")
	return nil
}
