package domaintest

import (
	"time"

	"github.com/rinkstats/streaks/internal/domain"
)

var seasonStart = time.Date(2024, time.October, 8, 0, 0, 0, 0, time.UTC)

// Day returns the date n days into a made up season
func Day(n int) time.Time {
	return seasonStart.AddDate(0, 0, n)
}

type gameBuilder struct {
	game *domain.GameRecord
}

func (gb *gameBuilder) WithGoals(goals int) *gameBuilder {
	gb.game.Goals = goals
	return gb
}

func (gb *gameBuilder) WithAssists(assists int) *gameBuilder {
	gb.game.Assists = assists
	return gb
}

func (gb *gameBuilder) WithShots(shots int) *gameBuilder {
	gb.game.Shots = shots
	return gb
}

func (gb *gameBuilder) WithTOI(toi time.Duration) *gameBuilder {
	gb.game.TimeOnIce = toi
	return gb
}

func (gb *gameBuilder) Build() domain.GameRecord {
	return *gb.game
}

func NewGameBuilder(playerID string, gameDate time.Time) *gameBuilder {
	return &gameBuilder{
		game: &domain.GameRecord{
			PlayerID:  playerID,
			GameDate:  gameDate,
			TimeOnIce: 15 * time.Minute,
		},
	}
}
