package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rinkstats/streaks/internal/adapters/cache"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// GetLeaderboard returns one page of the leaderboard selected by the request.
// An unrecognized active filter gives an empty page.
type GetLeaderboard = func(ctx context.Context, request domain.LeaderboardRequest) ([]domain.AggregateRow, error)

type gameLogSource interface {
	GetPlayerGames(ctx context.Context, filter domain.PlayerFilter) ([]domain.PlayerGames, error)
}

// leaderboardQuery holds exactly one of the two query kinds
type leaderboardQuery struct {
	recency *domain.RecencyQuery
	streak  *domain.StreakQuery
}

// parseLeaderboardRequest returns false when the active filter selects no leaderboard
func parseLeaderboardRequest(request domain.LeaderboardRequest) (leaderboardQuery, bool) {
	filter := domain.PlayerFilter{
		Position:  request.Position,
		NameQuery: request.SearchQuery,
	}
	// Unknown sort keys select the default of the mode
	sortKey, _ := domain.ParseSortKey(request.SortBy)

	activeFilter := strings.TrimSpace(request.ActiveFilter)

	if rawSize, ok := strings.CutPrefix(activeFilter, "last"); ok {
		windowSize, err := strconv.Atoi(rawSize)
		if err != nil {
			return leaderboardQuery{}, false
		}
		return leaderboardQuery{recency: &domain.RecencyQuery{
			Filter:     filter,
			WindowSize: windowSize,
			SortKey:    sortKey,
			Page:       request.Page,
			Limit:      request.Limit,
		}}, true
	}

	if rawKind, ok := strings.CutSuffix(activeFilter, "Streak"); ok {
		kind, err := domain.ParsePredicateKind(rawKind)
		if err != nil {
			return leaderboardQuery{}, false
		}
		return leaderboardQuery{streak: &domain.StreakQuery{
			Filter:  filter,
			Kind:    kind,
			SortKey: sortKey,
			Page:    request.Page,
			Limit:   request.Limit,
		}}, true
	}

	return leaderboardQuery{}, false
}

func (q leaderboardQuery) filter() domain.PlayerFilter {
	if q.recency != nil {
		return q.recency.Filter
	}
	return q.streak.Filter
}

func (q leaderboardQuery) mode() string {
	if q.recency != nil {
		return fmt.Sprintf("last%d", q.recency.WindowSize)
	}
	return string(q.streak.Kind) + "Streak"
}

func (q leaderboardQuery) validate() error {
	if q.recency != nil {
		return validateRecencyQuery(*q.recency)
	}
	return validateStreakQuery(*q.streak)
}

func (q leaderboardQuery) aggregate(players []domain.PlayerGames) ([]domain.AggregateRow, error) {
	if q.recency != nil {
		return AggregateRecency(players, *q.recency)
	}
	return AggregateActiveStreak(players, *q.streak)
}

// cacheKey is equal for requests that always give the same page
func (q leaderboardQuery) cacheKey() string {
	var sortKey domain.StatKey
	var page, limit int
	if q.recency != nil {
		sortKey, page, limit = q.recency.SortKey, q.recency.Page, q.recency.Limit
	} else {
		sortKey, page, limit = q.streak.SortKey, q.streak.Page, q.streak.Limit
	}

	filter := q.filter()
	position := domain.NormalizePosition(filter.Position)
	nameQuery := ""
	if strings.TrimSpace(filter.NameQuery) != "" {
		nameQuery = strings.ToLower(filter.NameQuery)
	}

	return fmt.Sprintf("%s|%s|%q|%s|%d|%d", q.mode(), position, nameQuery, sortKey, page, limit)
}

type leaderboardMetrics struct {
	rows metric.Int64Histogram
}

func setupLeaderboardMetrics() (leaderboardMetrics, error) {
	meter := otel.Meter("app/leaderboard")
	rows, err := meter.Int64Histogram(
		"app/leaderboard_rows",
		metric.WithDescription("Rows returned per leaderboard request"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100),
	)
	if err != nil {
		return leaderboardMetrics{}, fmt.Errorf("failed to create leaderboard rows histogram: %w", err)
	}
	return leaderboardMetrics{rows: rows}, nil
}

func buildGetLeaderboardWithoutCache(source gameLogSource, nowFunc func() time.Time) func(ctx context.Context, query leaderboardQuery) ([]domain.AggregateRow, error) {
	return func(ctx context.Context, query leaderboardQuery) ([]domain.AggregateRow, error) {
		logger := logging.FromContext(ctx)

		// One fetch, so every stage sees the same snapshot
		getCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		start := nowFunc()
		players, err := source.GetPlayerGames(getCtx, query.filter())
		if err != nil {
			// NOTE: gameLogSource implementations handle their own error reporting
			return nil, fmt.Errorf("%w: failed to get player games: %w", domain.ErrUpstreamUnavailable, err)
		}
		fetched := nowFunc()

		rows, err := query.aggregate(players)
		if err != nil {
			return nil, err
		}

		logger.InfoContext(ctx, "Computed leaderboard",
			slog.String("mode", query.mode()),
			slog.Int("candidates", len(players)),
			slog.Int("rows", len(rows)),
			slog.String("fetchDuration", fetched.Sub(start).String()),
			slog.String("aggregateDuration", nowFunc().Sub(fetched).String()),
		)

		return rows, nil
	}
}

func BuildGetLeaderboard(
	source gameLogSource,
	leaderboardCache cache.Cache[[]domain.AggregateRow],
	nowFunc func() time.Time,
) (GetLeaderboard, error) {
	metrics, err := setupLeaderboardMetrics()
	if err != nil {
		return nil, err
	}

	getLeaderboardWithoutCache := buildGetLeaderboardWithoutCache(source, nowFunc)

	return func(ctx context.Context, request domain.LeaderboardRequest) ([]domain.AggregateRow, error) {
		query, ok := parseLeaderboardRequest(request)
		if !ok {
			logging.FromContext(ctx).InfoContext(ctx, "Unrecognized active filter", "activeFilter", request.ActiveFilter)
			return []domain.AggregateRow{}, nil
		}

		// Validated before fetching, so bad requests never reach the source
		if err := query.validate(); err != nil {
			return nil, err
		}

		rows, _, err := cache.GetOrCreate(ctx, leaderboardCache, query.cacheKey(), func() ([]domain.AggregateRow, error) {
			return getLeaderboardWithoutCache(ctx, query)
		})
		if err != nil {
			// NOTE: GetOrCreate only returns an error if create() fails
			return nil, fmt.Errorf("failed to get leaderboard: %w", err)
		}

		metrics.rows.Record(ctx, int64(len(rows)), metric.WithAttributes(attribute.String("mode", query.mode())))

		return rows, nil
	}, nil
}
