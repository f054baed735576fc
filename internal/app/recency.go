package app

import (
	"fmt"
	"slices"

	"github.com/rinkstats/streaks/internal/domain"
)

var RecencyWindowSizes = []int{3, 5, 10}

func validateWindowSize(windowSize int) error {
	if !slices.Contains(RecencyWindowSizes, windowSize) {
		return fmt.Errorf("%w: recency: window size %d not in %v", domain.ErrInvalidParameter, windowSize, RecencyWindowSizes)
	}
	return nil
}

// ComputeRecency aggregates the windowSize most recent games of each player.
// Players with fewer than windowSize games are left out.
func ComputeRecency(players []domain.PlayerGames, windowSize int) ([]domain.AggregateRow, error) {
	if err := validateWindowSize(windowSize); err != nil {
		return nil, err
	}

	return mapPlayers(players, func(player *domain.PlayerGames) (domain.AggregateRow, bool) {
		return recencyRow(player, windowSize)
	}), nil
}

func recencyRow(player *domain.PlayerGames, windowSize int) (domain.AggregateRow, bool) {
	window := mostRecent(chronological(player.Games), windowSize)

	// Exactly windowSize games, no partial windows.
	// NOTE: Gaps between the game dates are fine, this is about count, not contiguity
	if len(window) != windowSize {
		return domain.AggregateRow{}, false
	}

	return aggregateGames(player.Identity, window), true
}
