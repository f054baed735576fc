package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rinkstats/streaks/internal/adapters/gamelogfile"
	"github.com/rinkstats/streaks/internal/adapters/gamelogrepository"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Load player game logs into the local store",
	Long:  "Reads a JSON array of players with their games. Games already stored for a player and date are replaced.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open game log file: %w", err)
	}
	defer file.Close()

	players, err := gamelogfile.Decode(file)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	repo, err := gamelogrepository.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	if err := repo.StorePlayerGames(cmd.Context(), players); err != nil {
		return fmt.Errorf("store game logs: %w", err)
	}

	games := 0
	for _, player := range players {
		games += len(player.Games)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d games for %d players into %s\n", games, len(players), dbPath)
	return nil
}
