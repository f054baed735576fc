package domain

import (
	"time"
)

// GameRecord is one player's statistics for one game
type GameRecord struct {
	PlayerID  string
	GameDate  time.Time
	Goals     int
	Assists   int
	Shots     int
	TimeOnIce time.Duration
}

func (g GameRecord) Points() int {
	return g.Goals + g.Assists
}

// Sanitized returns a copy of the record with negative values clamped to zero
//
// NOTE: The game logs are not validated upstream
func (g GameRecord) Sanitized() GameRecord {
	g.Goals = max(g.Goals, 0)
	g.Assists = max(g.Assists, 0)
	g.Shots = max(g.Shots, 0)
	g.TimeOnIce = max(g.TimeOnIce, 0)
	return g
}

// PlayerGames pairs an identity with the player's games, ordered by date ascending
type PlayerGames struct {
	Identity PlayerIdentity
	Games    []GameRecord
}
