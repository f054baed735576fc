package main

import (
	"fmt"

	"github.com/rinkstats/streaks/internal/adapters/gamelogrepository"
	"github.com/rinkstats/streaks/internal/app"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/report"
	"github.com/spf13/cobra"
)

var (
	position string
	name     string
	sortBy   string
	page     int
	limit    int

	windowSize int
	kind       string
	lookback   int
)

var recencyCmd = &cobra.Command{
	Use:   "recency",
	Short: "Rank players over their last N games",
	Args:  cobra.NoArgs,
	RunE:  runRecency,
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Rank players by their active streak",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&position, "position", "", "position filter (C, L, R, D or full name)")
	cmd.Flags().StringVar(&name, "name", "", "case insensitive first or last name substring")
	cmd.Flags().StringVar(&sortBy, "sort", "", "goals, assists, points or shots")
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", 25, "rows per page")
}

func init() {
	addFilterFlags(recencyCmd)
	recencyCmd.Flags().IntVar(&windowSize, "window", 5, fmt.Sprintf("number of most recent games, one of %v", app.RecencyWindowSizes))

	addFilterFlags(streakCmd)
	streakCmd.Flags().StringVar(&kind, "kind", string(domain.PredicateGoal), "goal, assist or point")
	streakCmd.Flags().IntVar(&lookback, "lookback", app.DefaultLookback, "number of most recent games searched for the streak")
}

func parseSortFlag() (domain.StatKey, error) {
	if sortBy == "" {
		return "", nil
	}
	key, ok := domain.ParseSortKey(sortBy)
	if !ok {
		return "", fmt.Errorf("%w: unsupported --sort %q", domain.ErrInvalidParameter, sortBy)
	}
	return key, nil
}

func loadPlayers(cmd *cobra.Command, filter domain.PlayerFilter) ([]domain.PlayerGames, error) {
	repo, err := gamelogrepository.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	players, err := repo.GetPlayerGames(cmd.Context(), filter)
	if err != nil {
		return nil, fmt.Errorf("load game logs: %w", err)
	}
	return players, nil
}

func printEmpty(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), "No players match. Run 'streaks import <file.json>' to add game logs.")
}

func runRecency(cmd *cobra.Command, args []string) error {
	sortKey, err := parseSortFlag()
	if err != nil {
		return err
	}
	query := domain.RecencyQuery{
		Filter:     domain.PlayerFilter{Position: position, NameQuery: name},
		WindowSize: windowSize,
		SortKey:    sortKey,
		Page:       page,
		Limit:      limit,
	}

	players, err := loadPlayers(cmd, query.Filter)
	if err != nil {
		return err
	}

	rows, err := app.AggregateRecency(players, query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		printEmpty(cmd)
		return nil
	}
	return report.PrintRecencyTable(cmd.OutOrStdout(), rows, (page-1)*limit+1)
}

func runStreak(cmd *cobra.Command, args []string) error {
	sortKey, err := parseSortFlag()
	if err != nil {
		return err
	}
	predicate, err := domain.ParsePredicateKind(kind)
	if err != nil {
		return err
	}
	// Zero would select the default
	if lookback == 0 {
		return fmt.Errorf("%w: --lookback must be positive", domain.ErrInvalidParameter)
	}
	query := domain.StreakQuery{
		Filter:   domain.PlayerFilter{Position: position, NameQuery: name},
		Kind:     predicate,
		Lookback: lookback,
		SortKey:  sortKey,
		Page:     page,
		Limit:    limit,
	}

	players, err := loadPlayers(cmd, query.Filter)
	if err != nil {
		return err
	}

	rows, err := app.AggregateActiveStreak(players, query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		printEmpty(cmd)
		return nil
	}
	return report.PrintStreakTable(cmd.OutOrStdout(), rows, (page-1)*limit+1)
}
