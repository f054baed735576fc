package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rinkstats/streaks/internal/adapters/cache"
	"github.com/rinkstats/streaks/internal/app"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/stretchr/testify/require"
)

var scheduleNow = time.Date(2024, time.October, 12, 15, 0, 0, 0, time.UTC)

func newSchedule() domain.Schedule {
	return domain.Schedule{
		QueriedAt: scheduleNow,
		Days: []domain.ScheduleDay{
			{
				Date: "2024-10-12",
				Games: []domain.ScheduledGame{
					{ID: "2024020030", StartTimeUTC: time.Date(2024, time.October, 12, 23, 0, 0, 0, time.UTC), HomeTeam: "TOR", AwayTeam: "PIT"},
				},
			},
			{
				Date: "2024-10-13",
				Games: []domain.ScheduledGame{
					{ID: "2024020040", StartTimeUTC: time.Date(2024, time.October, 13, 0, 30, 0, 0, time.UTC), HomeTeam: "EDM", AwayTeam: "PHI"},
					{ID: "2024020041", StartTimeUTC: time.Date(2024, time.October, 13, 2, 0, 0, 0, time.UTC), HomeTeam: "VGK", AwayTeam: "TOR"},
				},
			},
		},
	}
}

func TestFindNextGame(t *testing.T) {
	t.Parallel()

	cases := []struct {
		team  string
		found bool
		want  domain.NextGame
	}{
		{
			team:  "TOR",
			found: true,
			want: domain.NextGame{
				Team: "TOR", Opponent: "PIT", IsHome: true, IsToday: true,
				StartTimeUTC: time.Date(2024, time.October, 12, 23, 0, 0, 0, time.UTC),
			},
		},
		{
			team:  "PHI",
			found: true,
			want: domain.NextGame{
				Team: "PHI", Opponent: "EDM", IsHome: false, IsToday: false,
				StartTimeUTC: time.Date(2024, time.October, 13, 0, 30, 0, 0, time.UTC),
			},
		},
		{
			team:  "VGK",
			found: true,
			want: domain.NextGame{
				Team: "VGK", Opponent: "TOR", IsHome: true, IsToday: false,
				StartTimeUTC: time.Date(2024, time.October, 13, 2, 0, 0, 0, time.UTC),
			},
		},
		{team: "DET", found: false},
		{team: "", found: false},
	}

	for _, c := range cases {
		t.Run(c.team, func(t *testing.T) {
			t.Parallel()
			nextGame, found := app.FindNextGame(newSchedule(), c.team, scheduleNow)
			require.Equal(t, c.found, found)
			require.Equal(t, c.want, nextGame)
		})
	}

	t.Run("today is a UTC date", func(t *testing.T) {
		t.Parallel()
		// Still the 12th in New York, already the 13th in UTC
		est := time.FixedZone("EST", -5*60*60)
		now := time.Date(2024, time.October, 12, 21, 0, 0, 0, est)

		nextGame, found := app.FindNextGame(newSchedule(), "EDM", now)
		require.True(t, found)
		require.True(t, nextGame.IsToday)
	})

	t.Run("empty schedule", func(t *testing.T) {
		t.Parallel()
		_, found := app.FindNextGame(domain.Schedule{}, "TOR", scheduleNow)
		require.False(t, found)
	})
}

type fakeScheduleProvider struct {
	schedule domain.Schedule
	err      error
	calls    int
}

func (p *fakeScheduleProvider) GetSchedule(ctx context.Context) (domain.Schedule, error) {
	p.calls++
	if p.err != nil {
		return domain.Schedule{}, p.err
	}
	return p.schedule, nil
}

func TestGetNextGame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	nowFunc := func() time.Time { return scheduleNow }

	t.Run("normalizes the team and caches the schedule", func(t *testing.T) {
		t.Parallel()
		provider := &fakeScheduleProvider{schedule: newSchedule()}
		getNextGame := app.BuildGetNextGame(provider, cache.NewBasicCache[domain.Schedule](), nowFunc)

		nextGame, err := getNextGame(ctx, " tor ")
		require.NoError(t, err)
		require.Equal(t, "PIT", nextGame.Opponent)

		nextGame, err = getNextGame(ctx, "PHI")
		require.NoError(t, err)
		require.Equal(t, "EDM", nextGame.Opponent)

		require.Equal(t, 1, provider.calls)
	})

	t.Run("not scheduled", func(t *testing.T) {
		t.Parallel()
		provider := &fakeScheduleProvider{schedule: newSchedule()}
		getNextGame := app.BuildGetNextGame(provider, cache.NewBasicCache[domain.Schedule](), nowFunc)

		_, err := getNextGame(ctx, "DET")
		require.ErrorIs(t, err, domain.ErrTeamNotScheduled)
	})

	t.Run("invalid team", func(t *testing.T) {
		t.Parallel()
		provider := &fakeScheduleProvider{schedule: newSchedule()}
		getNextGame := app.BuildGetNextGame(provider, cache.NewBasicCache[domain.Schedule](), nowFunc)

		for _, team := range []string{"", "T", "TORO", "T0R", "TO-R"} {
			_, err := getNextGame(ctx, team)
			require.ErrorIs(t, err, domain.ErrInvalidParameter, team)
		}
		require.Equal(t, 0, provider.calls)
	})

	t.Run("provider failure", func(t *testing.T) {
		t.Parallel()
		provider := &fakeScheduleProvider{err: domain.ErrTemporarilyUnavailable}
		getNextGame := app.BuildGetNextGame(provider, cache.NewBasicCache[domain.Schedule](), nowFunc)

		_, err := getNextGame(ctx, "TOR")
		require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		require.ErrorIs(t, err, domain.ErrTemporarilyUnavailable)

		provider.err = nil
		provider.schedule = newSchedule()
		_, err = getNextGame(ctx, "TOR")
		require.NoError(t, err)
		require.Equal(t, 2, provider.calls)
	})

	t.Run("unexpected provider error", func(t *testing.T) {
		t.Parallel()
		provider := &fakeScheduleProvider{err: errors.New("boom")}
		getNextGame := app.BuildGetNextGame(provider, cache.NewBasicCache[domain.Schedule](), nowFunc)

		_, err := getNextGame(ctx, "TOR")
		require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})
}
