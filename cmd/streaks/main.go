package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rinkstats/streaks/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Hockey player recency and streak leaderboards",
	Long:  "Import player game logs into a local SQLite store and rank players by recent form or active streaks.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		cmd.SetContext(logging.AddToContext(cmd.Context(), logger))
	},
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".streaks", "games.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(recencyCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func main() {
	// Missing .env is fine, the environment may already be set up
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
