package app

import (
	"fmt"

	"github.com/rinkstats/streaks/internal/domain"
)

func validateSortKey(key domain.StatKey) error {
	switch key {
	case "", domain.StatGoals, domain.StatAssists, domain.StatPoints, domain.StatShots:
		return nil
	}
	return fmt.Errorf("%w: ranking: unsupported sort key %q", domain.ErrInvalidParameter, key)
}

func validateRecencyQuery(query domain.RecencyQuery) error {
	if err := validateWindowSize(query.WindowSize); err != nil {
		return err
	}
	if err := validateSortKey(query.SortKey); err != nil {
		return err
	}
	return validatePage(query.Page, query.Limit)
}

func streakLookback(query domain.StreakQuery) int {
	if query.Lookback == 0 {
		return DefaultLookback
	}
	return query.Lookback
}

func validateStreakQuery(query domain.StreakQuery) error {
	if err := validateStreakParameters(query.Kind, streakLookback(query)); err != nil {
		return err
	}
	if err := validateSortKey(query.SortKey); err != nil {
		return err
	}
	return validatePage(query.Page, query.Limit)
}

// AggregateRecency runs the filter, recency window and ranking stages and returns one page
func AggregateRecency(players []domain.PlayerGames, query domain.RecencyQuery) ([]domain.AggregateRow, error) {
	if err := validateRecencyQuery(query); err != nil {
		return nil, err
	}

	rows, err := ComputeRecency(FilterPlayers(players, query.Filter), query.WindowSize)
	if err != nil {
		return nil, err
	}

	metric := query.SortKey
	if metric == "" {
		metric = domain.StatPoints
	}

	return RankAndPaginate(rows, []domain.StatKey{metric}, query.Page, query.Limit)
}

// AggregateActiveStreak runs the filter, streak detection and ranking stages and returns one page
func AggregateActiveStreak(players []domain.PlayerGames, query domain.StreakQuery) ([]domain.AggregateRow, error) {
	if err := validateStreakQuery(query); err != nil {
		return nil, err
	}

	rows, err := ComputeActiveStreaks(FilterPlayers(players, query.Filter), query.Kind, streakLookback(query))
	if err != nil {
		return nil, err
	}

	secondary := query.SortKey
	if secondary == "" {
		secondary = query.Kind.Stat()
	}

	return RankAndPaginate(rows, []domain.StatKey{domain.StatStreakLength, secondary}, query.Page, query.Limit)
}
