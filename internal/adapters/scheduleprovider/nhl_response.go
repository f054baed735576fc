package scheduleprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/reporting"
)

type nhlTeam struct {
	Abbrev string `json:"abbrev"`
}

type nhlGame struct {
	ID           json.Number `json:"id"`
	StartTimeUTC string      `json:"startTimeUTC"`
	AwayTeam     nhlTeam     `json:"awayTeam"`
	HomeTeam     nhlTeam     `json:"homeTeam"`
}

type nhlScheduleDay struct {
	Date  string    `json:"date"`
	Games []nhlGame `json:"games"`
}

type nhlScheduleResponse struct {
	GameWeek []nhlScheduleDay `json:"gameWeek"`
}

// NHLResponseToSchedule converts a schedule feed response to a domain.Schedule
func NHLResponseToSchedule(ctx context.Context, data []byte, statusCode int, queriedAt time.Time) (domain.Schedule, error) {
	switch statusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		// Transient, not reported
		return domain.Schedule{}, fmt.Errorf("%w: schedule feed returned status code %d", domain.ErrTemporarilyUnavailable, statusCode)
	default:
		err := fmt.Errorf("schedule feed returned unexpected status code %d", statusCode)
		reporting.Report(ctx, err, map[string]string{
			"statusCode": strconv.Itoa(statusCode),
			"data":       string(data),
		})
		return domain.Schedule{}, err
	}

	var response nhlScheduleResponse
	if err := json.Unmarshal(data, &response); err != nil {
		err := fmt.Errorf("failed to parse schedule response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data": string(data),
		})
		return domain.Schedule{}, err
	}

	schedule := domain.Schedule{
		Days:      make([]domain.ScheduleDay, 0, len(response.GameWeek)),
		QueriedAt: queriedAt,
	}
	for _, day := range response.GameWeek {
		games := make([]domain.ScheduledGame, 0, len(day.Games))
		for _, game := range day.Games {
			startTime, err := time.Parse(time.RFC3339, game.StartTimeUTC)
			if err != nil {
				err := fmt.Errorf("failed to parse start time of game %s: %w", game.ID, err)
				reporting.Report(ctx, err, map[string]string{
					"startTimeUTC": game.StartTimeUTC,
				})
				return domain.Schedule{}, err
			}
			games = append(games, domain.ScheduledGame{
				ID:           game.ID.String(),
				StartTimeUTC: startTime.UTC(),
				HomeTeam:     game.HomeTeam.Abbrev,
				AwayTeam:     game.AwayTeam.Abbrev,
			})
		}
		schedule.Days = append(schedule.Days, domain.ScheduleDay{Date: day.Date, Games: games})
	}

	return schedule, nil
}
