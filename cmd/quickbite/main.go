package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/quickbite/internal/config"
	"github.com/user/quickbite/internal/menu"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "quickbite",
	Short: "QuickBite conversational food ordering assistant",
}

func init() {
	defaultPath := filepath.Join(os.Getenv("HOME"), ".quickbite", "config.json")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "config file path")
}

// loadConfig loads the config or exits; commands past flag parsing can't do
// anything useful without it.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadCatalog returns the menu from the configured file, or the built-in
// catalog when no file is set.
func loadCatalog(cfg *config.Config) (*menu.Catalog, error) {
	if cfg.MenuPath == "" {
		return menu.Default(), nil
	}
	return menu.Load(cfg.MenuPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
