package gamelogfile

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rinkstats/streaks/internal/domain"
)

type gameData struct {
	GameDate string `json:"game_date"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
	Shots    int    `json:"shots"`
	TOI      string `json:"toi"`
}

type playerData struct {
	PlayerID   string     `json:"player_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	TeamAbbrev string     `json:"team_abbrev"`
	Position   string     `json:"position"`
	Games      []gameData `json:"games"`
}

// ParseTOI parses a time on ice as MM:SS or HH:MM:SS. Minutes may exceed 59 in the MM:SS form.
func ParseTOI(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("toi %q: expected MM:SS or HH:MM:SS", raw)
	}

	var total time.Duration
	units := []time.Duration{time.Second, time.Minute, time.Hour}
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil || value < 0 {
			return 0, fmt.Errorf("toi %q: invalid component %q", raw, part)
		}
		// Seconds, and minutes when hours are present, must be below 60
		unitIndex := len(parts) - 1 - i
		if unitIndex < len(parts)-1 && value >= 60 {
			return 0, fmt.Errorf("toi %q: component %q out of range", raw, part)
		}
		total += time.Duration(value) * units[unitIndex]
	}
	return total, nil
}

// Decode reads a JSON array of players, each with their game log
func Decode(r io.Reader) ([]domain.PlayerGames, error) {
	var data []playerData
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode game log file: %w", err)
	}

	players := make([]domain.PlayerGames, 0, len(data))
	for _, player := range data {
		if player.PlayerID == "" {
			return nil, fmt.Errorf("player %s %s: missing player_id", player.FirstName, player.LastName)
		}

		games := make([]domain.GameRecord, 0, len(player.Games))
		for _, game := range player.Games {
			gameDate, err := time.Parse(time.DateOnly, game.GameDate)
			if err != nil {
				return nil, fmt.Errorf("player %s: invalid game_date %q: %w", player.PlayerID, game.GameDate, err)
			}
			toi, err := ParseTOI(game.TOI)
			if err != nil {
				return nil, fmt.Errorf("player %s on %s: %w", player.PlayerID, game.GameDate, err)
			}
			games = append(games, domain.GameRecord{
				PlayerID:  player.PlayerID,
				GameDate:  gameDate,
				Goals:     game.Goals,
				Assists:   game.Assists,
				Shots:     game.Shots,
				TimeOnIce: toi,
			})
		}

		players = append(players, domain.PlayerGames{
			Identity: domain.PlayerIdentity{
				PlayerID:   player.PlayerID,
				FirstName:  player.FirstName,
				LastName:   player.LastName,
				TeamAbbrev: player.TeamAbbrev,
				Position:   domain.NormalizePosition(player.Position),
			},
			Games: games,
		})
	}

	return players, nil
}
