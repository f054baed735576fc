package ports

import (
	"encoding/json"
	"time"

	"github.com/rinkstats/streaks/internal/domain"
)

type playerRowData struct {
	PlayerID     string `json:"player_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	TeamAbbrev   string `json:"team_abbrev"`
	Position     string `json:"position"`
	StreakLength int    `json:"streak_length"`
	GamesPlayed  int    `json:"games_played"`
	TotalGoals   int    `json:"total_goals"`
	TotalAssists int    `json:"total_assists"`
	TotalPoints  int    `json:"total_points"`
	TotalShots   int    `json:"total_shots"`
	AvgTOI       string `json:"avg_toi"`
	StreakStart  string `json:"streak_start,omitempty"`
	StreakEnd    string `json:"streak_end,omitempty"`
}

func formatDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.UTC().Format(time.DateOnly)
}

func aggregateRowToPlayerRowData(row *domain.AggregateRow) playerRowData {
	data := playerRowData{
		PlayerID:     row.Player.PlayerID,
		FirstName:    row.Player.FirstName,
		LastName:     row.Player.LastName,
		TeamAbbrev:   row.Player.TeamAbbrev,
		Position:     string(domain.NormalizePosition(string(row.Player.Position))),
		StreakLength: row.StreakLength,
		GamesPlayed:  row.GamesPlayed,
		TotalGoals:   row.TotalGoals,
		TotalAssists: row.TotalAssists,
		TotalPoints:  row.TotalPoints,
		TotalShots:   row.TotalShots,
		AvgTOI:       domain.FormatTOI(row.AvgTOI),
	}
	if row.IsStreak() {
		data.StreakStart = formatDate(row.StreakStart)
		data.StreakEnd = formatDate(row.StreakEnd)
	}
	return data
}

// AggregateRowsToResponseData renders the rows as a JSON array, in order
func AggregateRowsToResponseData(rows []domain.AggregateRow) ([]byte, error) {
	data := make([]playerRowData, 0, len(rows))
	for i := range rows {
		data = append(data, aggregateRowToPlayerRowData(&rows[i]))
	}
	return json.Marshal(data)
}
