package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rinkstats/streaks/internal/adapters/cache"
	"github.com/rinkstats/streaks/internal/domain"
)

type GetNextGame = func(ctx context.Context, team string) (domain.NextGame, error)

type scheduleProvider interface {
	GetSchedule(ctx context.Context) (domain.Schedule, error)
}

var teamAbbrevRx = regexp.MustCompile(`^[A-Z]{2,3}$`)

// The feed is always queried for the current game week
const currentScheduleCacheKey = "schedule/now"

// FindNextGame returns the first game in the schedule involving team
func FindNextGame(schedule domain.Schedule, team string, now time.Time) (domain.NextGame, bool) {
	today := now.UTC().Format(time.DateOnly)

	for _, day := range schedule.Days {
		for _, game := range day.Games {
			if game.HomeTeam != team && game.AwayTeam != team {
				continue
			}

			isHome := game.HomeTeam == team
			opponent := game.HomeTeam
			if isHome {
				opponent = game.AwayTeam
			}

			return domain.NextGame{
				Team:         team,
				Opponent:     opponent,
				IsHome:       isHome,
				IsToday:      game.StartTimeUTC.UTC().Format(time.DateOnly) == today,
				StartTimeUTC: game.StartTimeUTC,
			}, true
		}
	}

	return domain.NextGame{}, false
}

func BuildGetNextGame(
	provider scheduleProvider,
	scheduleCache cache.Cache[domain.Schedule],
	nowFunc func() time.Time,
) GetNextGame {
	return func(ctx context.Context, team string) (domain.NextGame, error) {
		team = strings.ToUpper(strings.TrimSpace(team))
		if !teamAbbrevRx.MatchString(team) {
			return domain.NextGame{}, fmt.Errorf("%w: schedule: invalid team abbreviation %q", domain.ErrInvalidParameter, team)
		}

		schedule, _, err := cache.GetOrCreate(ctx, scheduleCache, currentScheduleCacheKey, func() (domain.Schedule, error) {
			getCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.GetSchedule(getCtx)
		})
		if err != nil {
			// NOTE: scheduleProvider implementations handle their own error reporting
			return domain.NextGame{}, fmt.Errorf("%w: failed to get schedule: %w", domain.ErrUpstreamUnavailable, err)
		}

		nextGame, ok := FindNextGame(schedule, team, nowFunc())
		if !ok {
			return domain.NextGame{}, fmt.Errorf("%w: %s", domain.ErrTeamNotScheduled, team)
		}

		return nextGame, nil
	}
}
