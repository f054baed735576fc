package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rinkstats/streaks/internal/adapters/cache"
	"github.com/rinkstats/streaks/internal/adapters/scheduleprovider"
	"github.com/rinkstats/streaks/internal/app"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/ratelimiting"
	"github.com/rinkstats/streaks/internal/report"
	"github.com/spf13/cobra"
)

const defaultScheduleBaseURL = "https://api-web.nhle.com/v1"

var scheduleCmd = &cobra.Command{
	Use:   "schedule <TEAM>",
	Short: "Show the next game of a team this week",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	baseURL := os.Getenv("SCHEDULE_BASE_URL")
	if baseURL == "" {
		baseURL = defaultScheduleBaseURL
	}

	api := scheduleprovider.NewNHLAPI(
		&http.Client{Timeout: 10 * time.Second},
		baseURL,
		ratelimiting.NewUnlimitedRequestLimiter(),
		time.Now,
	)
	provider, err := scheduleprovider.NewNHLScheduleProvider(api)
	if err != nil {
		return fmt.Errorf("set up schedule provider: %w", err)
	}

	getNextGame := app.BuildGetNextGame(provider, cache.NewBasicCache[domain.Schedule](), time.Now)

	nextGame, err := getNextGame(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	report.PrintNextGame(cmd.OutOrStdout(), nextGame)
	return nil
}
