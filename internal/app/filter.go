package app

import (
	"strings"

	"github.com/rinkstats/streaks/internal/domain"
)

// FilterPlayers keeps the players matching both the position and the name filter.
// Absent filters do not restrict.
func FilterPlayers(players []domain.PlayerGames, filter domain.PlayerFilter) []domain.PlayerGames {
	if filter.IsEmpty() {
		return players
	}

	rawPosition := strings.TrimSpace(filter.Position)
	filterPosition := rawPosition != ""
	wanted := domain.NormalizePosition(rawPosition)

	query := strings.ToLower(filter.NameQuery)
	filterName := strings.TrimSpace(query) != ""

	filtered := make([]domain.PlayerGames, 0, len(players))
	for _, player := range players {
		if filterPosition && !positionMatches(player.Identity.Position, wanted) {
			continue
		}
		if filterName && !nameMatches(player.Identity, query) {
			continue
		}
		filtered = append(filtered, player)
	}
	return filtered
}

func positionMatches(actual, wanted domain.Position) bool {
	if !wanted.IsKnown() {
		// Unrecognized tokens are matched literally, which normally selects nobody
		return actual == wanted
	}
	return domain.NormalizePosition(string(actual)) == wanted
}

// query must already be lowercased
func nameMatches(identity domain.PlayerIdentity, query string) bool {
	return strings.Contains(strings.ToLower(identity.FirstName), query) ||
		strings.Contains(strings.ToLower(identity.LastName), query)
}
