package app

import (
	"fmt"

	"github.com/rinkstats/streaks/internal/domain"
)

const DefaultLookback = 15

type rankedGame struct {
	game     domain.GameRecord
	seqRank  int
	predRank int
}

// runKey is equal for all games in the same contiguous run of predicate-true games
func (g rankedGame) runKey() int {
	return g.seqRank - g.predRank
}

type streakRun []domain.GameRecord

// detectRuns partitions the predicate-true games of a date ascending window into maximal contiguous runs
func detectRuns(window []domain.GameRecord, kind domain.PredicateKind) []streakRun {
	// First pass: rank every game in the window
	ranked := make([]rankedGame, len(window))
	for i, game := range window {
		ranked[i] = rankedGame{game: game, seqRank: i + 1}
	}

	// Second pass: rank the predicate-true games among themselves
	matching := make([]rankedGame, 0, len(ranked))
	for _, rg := range ranked {
		if !kind.Holds(rg.game) {
			continue
		}
		rg.predRank = len(matching) + 1
		matching = append(matching, rg)
	}

	// Group by the rank difference. Any predicate-false game in between bumps the key.
	runs := []streakRun{}
	currentKey := 0
	for i, rg := range matching {
		if i == 0 || rg.runKey() != currentKey {
			runs = append(runs, streakRun{})
			currentKey = rg.runKey()
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], rg.game)
	}

	return runs
}

// activeRun returns the run ending with the last game in the window, if any
func activeRun(window []domain.GameRecord, runs []streakRun) (streakRun, bool) {
	if len(window) == 0 {
		return nil, false
	}
	latest := window[len(window)-1].GameDate

	for _, run := range runs {
		if run[len(run)-1].GameDate.Equal(latest) {
			return run, true
		}
	}
	return nil, false
}

func validateStreakParameters(kind domain.PredicateKind, lookback int) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: streak: unrecognized predicate kind %q", domain.ErrInvalidParameter, kind)
	}
	if lookback < 1 {
		return fmt.Errorf("%w: streak: lookback must be positive, got %d", domain.ErrInvalidParameter, lookback)
	}
	return nil
}

// ComputeActiveStreaks aggregates the currently active run of each player within the lookback window.
// Players whose most recent game fails the predicate are left out.
func ComputeActiveStreaks(players []domain.PlayerGames, kind domain.PredicateKind, lookback int) ([]domain.AggregateRow, error) {
	if err := validateStreakParameters(kind, lookback); err != nil {
		return nil, err
	}

	return mapPlayers(players, func(player *domain.PlayerGames) (domain.AggregateRow, bool) {
		return activeStreakRow(player, kind, lookback)
	}), nil
}

func activeStreakRow(player *domain.PlayerGames, kind domain.PredicateKind, lookback int) (domain.AggregateRow, bool) {
	// NOTE: Must be date ascending so contiguous means adjacent by date
	window := mostRecent(chronological(player.Games), lookback)

	run, ok := activeRun(window, detectRuns(window, kind))
	if !ok {
		return domain.AggregateRow{}, false
	}

	row := aggregateGames(player.Identity, run)
	row.StreakLength = len(run)
	row.StreakStart = run[0].GameDate
	row.StreakEnd = run[len(run)-1].GameDate

	return row, true
}
