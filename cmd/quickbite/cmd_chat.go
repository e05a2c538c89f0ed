package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/quickbite/internal/engine"
	"github.com/user/quickbite/internal/nlu"
	"github.com/user/quickbite/internal/state"
	"github.com/user/quickbite/internal/types"
	"github.com/user/quickbite/pkg/llm"
)

func init() {
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the ordering assistant in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}

	sessions := state.NewSessionStore(cfg.DataDir)
	orders := state.NewOrderStore(cfg.DataDir)
	customers := state.NewCustomerStore(cfg.DataDir)

	provider := newProvider(&llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, cfg.LLM.Provider)
	nluClient := nlu.NewClient(provider, cfg.LLM.Model,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second, cfg.LLM.MaxPromptTokens)

	eng := engine.New(catalog, orders, customers, nluClient)

	ctx := context.Background()
	sess, err := sessions.ResolveOrCreate(ctx, types.NewSessionKey("cli", "default"))
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}

	fmt.Println("Welcome to QuickBite Food Ordering! How can I help you today?")
	fmt.Println("You can order food, check an existing order, or ask for help. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		response := eng.ProcessMessage(ctx, line, sess)
		if err := sessions.Save(ctx, sess); err != nil {
			fmt.Fprintf(os.Stderr, "warning: saving session failed: %v\n", err)
		}
		fmt.Println(response)
	}
	return scanner.Err()
}
