package scheduleprovider

import (
	"context"
	"testing"
	"time"

	"github.com/rinkstats/streaks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockedNHLAPI struct {
	data       string
	statusCode int
	queriedAt  time.Time
	err        error
}

func (m *mockedNHLAPI) GetScheduleData(ctx context.Context) ([]byte, int, time.Time, error) {
	return []byte(m.data), m.statusCode, m.queriedAt, m.err
}

func TestNHLScheduleProvider(t *testing.T) {
	t.Parallel()

	queriedAt := time.Date(2024, time.October, 12, 15, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		provider, err := NewNHLScheduleProvider(&mockedNHLAPI{data: scheduleFixture, statusCode: 200, queriedAt: queriedAt})
		require.NoError(t, err)

		schedule, err := provider.GetSchedule(t.Context())
		require.NoError(t, err)
		require.Len(t, schedule.Days, 3)
		require.Equal(t, queriedAt, schedule.QueriedAt)
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()
		provider, err := NewNHLScheduleProvider(&mockedNHLAPI{err: assert.AnError})
		require.NoError(t, err)

		_, err = provider.GetSchedule(t.Context())
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("feed unavailable", func(t *testing.T) {
		t.Parallel()
		provider, err := NewNHLScheduleProvider(&mockedNHLAPI{data: "", statusCode: 503})
		require.NoError(t, err)

		_, err = provider.GetSchedule(t.Context())
		require.ErrorIs(t, err, domain.ErrTemporarilyUnavailable)
	})
}
