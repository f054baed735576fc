package ports

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rinkstats/streaks/internal/app"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/logging"
	"github.com/rinkstats/streaks/internal/reporting"
)

const (
	defaultPage  = 1
	defaultLimit = 25
	maxLimit     = 100
)

// parsePositiveParam parses an optional integer query parameter
func parsePositiveParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidParameter, name, raw)
	}
	return value, nil
}

func parseLeaderboardRequest(r *http.Request) (domain.LeaderboardRequest, string, error) {
	page, err := parsePositiveParam(r, "page", defaultPage)
	if err != nil {
		return domain.LeaderboardRequest{}, "Invalid page", err
	}
	limit, err := parsePositiveParam(r, "limit", defaultLimit)
	if err != nil {
		return domain.LeaderboardRequest{}, "Invalid limit", err
	}
	if limit > maxLimit {
		return domain.LeaderboardRequest{}, fmt.Sprintf("Limit must be at most %d", maxLimit),
			fmt.Errorf("%w: limit %d above %d", domain.ErrInvalidParameter, limit, maxLimit)
	}

	query := r.URL.Query()
	return domain.LeaderboardRequest{
		ActiveFilter: query.Get("activeFilter"),
		Position:     query.Get("position"),
		SortBy:       query.Get("sortBy"),
		SearchQuery:  query.Get("searchQuery"),
		Page:         page,
		Limit:        limit,
	}, "", nil
}

func MakeGetPlayersHandler(
	getLeaderboard app.GetLeaderboard,
	deps HandlerDependencies,
) http.HandlerFunc {
	middleware := deps.middleware("players")

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, cause, err := parseLeaderboardRequest(r)
		if err != nil {
			logging.FromContext(ctx).InfoContext(ctx, "Invalid leaderboard request", "error", err.Error())
			writeErrorResponse(w, http.StatusBadRequest, cause)
			return
		}

		ctx = logging.AddMetaToContext(ctx,
			slog.String("activeFilter", request.ActiveFilter),
			slog.Int("page", request.Page),
			slog.Int("limit", request.Limit),
		)
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"activeFilter": request.ActiveFilter,
			"position":     request.Position,
			"sortBy":       request.SortBy,
			"searchQuery":  request.SearchQuery,
		})

		rows, err := getLeaderboard(ctx, request)
		if errors.Is(err, domain.ErrInvalidParameter) {
			logging.FromContext(ctx).InfoContext(ctx, "Rejected leaderboard request", "error", err.Error())
			writeErrorResponse(w, http.StatusBadRequest, invalidParameterCause(err))
			return
		} else if errors.Is(err, domain.ErrUpstreamUnavailable) {
			// NOTE: GetLeaderboard implementations handle their own error reporting
			writeErrorResponse(w, http.StatusServiceUnavailable, "Player data temporarily unavailable")
			return
		} else if err != nil {
			reporting.Report(ctx, fmt.Errorf("unexpected leaderboard error: %w", err))
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to get players")
			return
		}

		marshalled, err := AggregateRowsToResponseData(rows)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to marshal players response: %w", err), map[string]string{
				"length": strconv.Itoa(len(rows)),
			})
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to marshal response")
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning players", "rows", len(rows))

		writeJSONResponse(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}
