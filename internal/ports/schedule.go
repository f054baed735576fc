package ports

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rinkstats/streaks/internal/app"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/logging"
	"github.com/rinkstats/streaks/internal/reporting"
)

type nextGameResponse struct {
	Success      bool      `json:"success"`
	Team         string    `json:"team"`
	Opponent     string    `json:"opponent"`
	IsHome       bool      `json:"is_home"`
	IsToday      bool      `json:"is_today"`
	Date         string    `json:"date"`
	StartTimeUTC time.Time `json:"start_time_utc"`
}

func NextGameToResponseData(nextGame domain.NextGame) ([]byte, error) {
	return json.Marshal(nextGameResponse{
		Success:      true,
		Team:         nextGame.Team,
		Opponent:     nextGame.Opponent,
		IsHome:       nextGame.IsHome,
		IsToday:      nextGame.IsToday,
		Date:         formatDate(nextGame.StartTimeUTC),
		StartTimeUTC: nextGame.StartTimeUTC.UTC(),
	})
}

func MakeGetScheduleHandler(
	getNextGame app.GetNextGame,
	deps HandlerDependencies,
) http.HandlerFunc {
	middleware := deps.middleware("schedule")

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		team := r.PathValue("team")
		ctx = logging.AddMetaToContext(ctx, slog.String("team", team))
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{"team": team})

		nextGame, err := getNextGame(ctx, team)
		if errors.Is(err, domain.ErrInvalidParameter) {
			writeErrorResponse(w, http.StatusBadRequest, "Invalid team")
			return
		} else if errors.Is(err, domain.ErrTeamNotScheduled) {
			writeErrorResponse(w, http.StatusNotFound, "No upcoming game for team")
			return
		} else if errors.Is(err, domain.ErrUpstreamUnavailable) {
			// NOTE: GetNextGame implementations handle their own error reporting
			writeErrorResponse(w, http.StatusServiceUnavailable, "Schedule temporarily unavailable")
			return
		} else if err != nil {
			reporting.Report(ctx, fmt.Errorf("unexpected schedule error: %w", err))
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to get schedule")
			return
		}

		marshalled, err := NextGameToResponseData(nextGame)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to marshal schedule response: %w", err))
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to marshal response")
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning next game", "opponent", nextGame.Opponent)

		writeJSONResponse(w, http.StatusOK, marshalled)
	}

	return middleware(handler)
}
