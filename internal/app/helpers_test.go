package app_test

import (
	"fmt"

	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/domaintest"
)

func playerIDs(rows []domain.AggregateRow) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.Player.PlayerID
	}
	return ids
}

func gamesPlayerIDs(players []domain.PlayerGames) []string {
	ids := make([]string, len(players))
	for i, player := range players {
		ids[i] = player.Identity.PlayerID
	}
	return ids
}

// playersFromGoalLogs builds one player per log, ids p000, p001, ...
func playersFromGoalLogs(logs [][]int) []domain.PlayerGames {
	players := make([]domain.PlayerGames, len(logs))
	for i, goals := range logs {
		players[i] = domaintest.NewPlayerBuilder(fmt.Sprintf("p%03d", i)).WithGoalLog(0, goals...).Build()
	}
	return players
}
