package gamelogrepository

import (
	"context"

	"github.com/rinkstats/streaks/internal/domain"
)

// GameLogSource returns every player matching the filter with all of their games.
// Players are ordered by player id, games by date, both ascending.
//
// NOTE: The filter is a pushdown hint. Callers must re-apply it to the result.
type GameLogSource interface {
	GetPlayerGames(ctx context.Context, filter domain.PlayerFilter) ([]domain.PlayerGames, error)
}

type GameLogRepository interface {
	GameLogSource
	// StorePlayerGames upserts the identities and game logs in one transaction
	StorePlayerGames(ctx context.Context, players []domain.PlayerGames) error
}
