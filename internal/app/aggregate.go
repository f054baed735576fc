package app

import (
	"runtime"
	"slices"

	"github.com/rinkstats/streaks/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Below this many players the per-player work is done inline
const parallelThreshold = 256

// chronological returns a sanitized copy of the games sorted by date ascending.
// Games on the same date keep their arrival order.
func chronological(games []domain.GameRecord) []domain.GameRecord {
	sorted := make([]domain.GameRecord, len(games))
	for i, game := range games {
		sorted[i] = game.Sanitized()
	}

	slices.SortStableFunc(sorted, func(a, b domain.GameRecord) int {
		return a.GameDate.Compare(b.GameDate)
	})

	return sorted
}

// mostRecent returns the last n games of a date ascending slice
func mostRecent(games []domain.GameRecord, n int) []domain.GameRecord {
	if len(games) <= n {
		return games
	}
	return games[len(games)-n:]
}

func aggregateGames(identity domain.PlayerIdentity, games []domain.GameRecord) domain.AggregateRow {
	row := domain.AggregateRow{
		Player:      identity,
		GamesPlayed: len(games),
	}

	for _, game := range games {
		row.TotalGoals += game.Goals
		row.TotalAssists += game.Assists
		row.TotalShots += game.Shots
	}
	row.TotalPoints = row.TotalGoals + row.TotalAssists
	row.AvgTOI = domain.AverageTOI(games)

	return row
}

// mapPlayers computes at most one row per player.
// The rows are returned in the same order as the players, regardless of how the work was scheduled.
func mapPlayers(players []domain.PlayerGames, compute func(player *domain.PlayerGames) (domain.AggregateRow, bool)) []domain.AggregateRow {
	type slot struct {
		row      domain.AggregateRow
		included bool
	}
	slots := make([]slot, len(players))

	if len(players) < parallelThreshold {
		for i := range players {
			slots[i].row, slots[i].included = compute(&players[i])
		}
	} else {
		var group errgroup.Group
		group.SetLimit(runtime.GOMAXPROCS(0))
		for i := range players {
			group.Go(func() error {
				slots[i].row, slots[i].included = compute(&players[i])
				return nil
			})
		}
		// compute can't fail
		_ = group.Wait()
	}

	rows := make([]domain.AggregateRow, 0, len(players))
	for _, s := range slots {
		if s.included {
			rows = append(rows, s.row)
		}
	}
	return rows
}
