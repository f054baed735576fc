package domain_test

import (
	"testing"
	"time"

	"github.com/rinkstats/streaks/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestFormatTOI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{18*time.Minute + 32*time.Second, "00:18:32"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
		{1500 * time.Millisecond, "00:00:01"},
		{-time.Minute, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, domain.FormatTOI(tt.duration))
		})
	}
}

func TestAverageTOI(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, time.Duration(0), domain.AverageTOI(nil))
	})

	t.Run("whole seconds", func(t *testing.T) {
		t.Parallel()
		games := []domain.GameRecord{
			{TimeOnIce: 20 * time.Minute},
			{TimeOnIce: 10 * time.Minute},
		}
		require.Equal(t, 15*time.Minute, domain.AverageTOI(games))
	})

	t.Run("fractional average is truncated", func(t *testing.T) {
		t.Parallel()
		games := []domain.GameRecord{
			{TimeOnIce: 10 * time.Second},
			{TimeOnIce: 11 * time.Second},
		}
		require.Equal(t, 10*time.Second, domain.AverageTOI(games))
	})
}

func TestSanitized(t *testing.T) {
	t.Parallel()

	game := domain.GameRecord{PlayerID: "1", Goals: -1, Assists: 2, Shots: -4, TimeOnIce: -time.Minute}
	require.Equal(t, domain.GameRecord{PlayerID: "1", Goals: 0, Assists: 2, Shots: 0, TimeOnIce: 0}, game.Sanitized())
	// Original is untouched
	require.Equal(t, -1, game.Goals)
}

func TestAggregateRowStat(t *testing.T) {
	t.Parallel()

	row := domain.AggregateRow{
		GamesPlayed:  5,
		StreakLength: 3,
		TotalGoals:   2,
		TotalAssists: 4,
		TotalPoints:  6,
		TotalShots:   11,
	}

	require.Equal(t, 2, row.Stat(domain.StatGoals))
	require.Equal(t, 4, row.Stat(domain.StatAssists))
	require.Equal(t, 6, row.Stat(domain.StatPoints))
	require.Equal(t, 11, row.Stat(domain.StatShots))
	require.Equal(t, 3, row.Stat(domain.StatStreakLength))
	require.Panics(t, func() { row.Stat("hits") })

	require.False(t, row.IsStreak())
	row.StreakEnd = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, row.IsStreak())
}
