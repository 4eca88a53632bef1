package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go-cart-api/internal/app"
	"go-cart-api/internal/config"
	"go-cart-api/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cartctl",
	Short: "Inspect session carts and their totals",
	Long:  "cartctl reads the session state the API keeps in Redis and prints carts, totals and orders.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("session", "", "Session id (user-<id> or guest-<uuid>)")
	rootCmd.PersistentFlags().String("format", "table", "Output format: table, json")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address (overrides REDIS_ADDR)")
	rootCmd.PersistentFlags().String("locale", "", "Locale for money formatting (overrides LOCALE)")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	if v, _ := rootCmd.PersistentFlags().GetString("redis-addr"); v != "" {
		cfg.RedisAddr = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("locale"); v != "" {
		cfg.Locale = v
	}
}

// withModules connects, runs fn and closes the connections.
func withModules(fn func(m app.Modules) error) error {
	log, err := logger.New("warn", cfg.AppEnv)
	if err != nil {
		log = zap.NewNop()
	}
	defer func() { _ = log.Sync() }()

	infra, err := app.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	return fn(app.NewModules(cfg, infra, log))
}

func sessionFlag(cmd *cobra.Command) (string, error) {
	sid, _ := cmd.Flags().GetString("session")
	if sid == "" {
		return "", errors.New("--session is required")
	}
	return sid, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
