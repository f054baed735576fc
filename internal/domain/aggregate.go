package domain

import (
	"fmt"
	"time"
)

// AggregateRow is the per-player result of a recency or streak aggregation
type AggregateRow struct {
	Player PlayerIdentity

	GamesPlayed  int
	StreakLength int

	TotalGoals   int
	TotalAssists int
	TotalPoints  int
	TotalShots   int

	// Average time on ice, whole seconds
	AvgTOI time.Duration

	// Zero in recency mode
	StreakStart time.Time
	StreakEnd   time.Time
}

func (r *AggregateRow) Stat(key StatKey) int {
	switch key {
	case StatGoals:
		return r.TotalGoals
	case StatAssists:
		return r.TotalAssists
	case StatPoints:
		return r.TotalPoints
	case StatShots:
		return r.TotalShots
	case StatStreakLength:
		return r.StreakLength
	default:
		panic(fmt.Sprintf("unknown stat key %q", key))
	}
}

// IsStreak reports whether the row describes a run rather than a recency window
func (r *AggregateRow) IsStreak() bool {
	return !r.StreakEnd.IsZero()
}

// AverageTOI computes the mean time on ice in whole seconds.
// Fractional seconds are truncated.
func AverageTOI(games []GameRecord) time.Duration {
	if len(games) == 0 {
		return 0
	}
	var totalSeconds int64
	for _, game := range games {
		totalSeconds += int64(game.TimeOnIce / time.Second)
	}
	return time.Duration(totalSeconds/int64(len(games))) * time.Second
}

// FormatTOI renders a duration as HH:MM:SS. Hours do not wrap at 24.
func FormatTOI(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}
