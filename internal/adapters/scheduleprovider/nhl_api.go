package scheduleprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rinkstats/streaks/internal/logging"
	"github.com/rinkstats/streaks/internal/ratelimiting"
	"github.com/rinkstats/streaks/internal/reporting"
)

const USER_AGENT = "rinkstats-streaks/0.1.0 (+https://github.com/rinkstats/streaks)"

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NHLAPI fetches the raw schedule of the current game week
type NHLAPI interface {
	GetScheduleData(ctx context.Context) ([]byte, int, time.Time, error)
}

type nhlAPIImpl struct {
	httpClient     HttpClient
	baseURL        string
	requestLimiter ratelimiting.RequestLimiter
	nowFunc        func() time.Time
}

func (api *nhlAPIImpl) GetScheduleData(ctx context.Context) ([]byte, int, time.Time, error) {
	logger := logging.FromContext(ctx)
	url := fmt.Sprintf("%s/schedule/now", api.baseURL)

	if !api.requestLimiter.Wait(ctx) {
		err := fmt.Errorf("no request budget left for the schedule feed: %w", context.Cause(ctx))
		logger.WarnContext(ctx, err.Error())
		return nil, -1, time.Time{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		reporting.Report(ctx, err)
		return nil, -1, time.Time{}, err
	}
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "application/json")

	start := api.nowFunc()
	resp, err := api.httpClient.Do(req)
	if err != nil {
		err := fmt.Errorf("failed to send request: %w", err)
		reporting.Report(ctx, err)
		return nil, -1, time.Time{}, err
	}
	defer resp.Body.Close()

	queriedAt := api.nowFunc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err := fmt.Errorf("failed to read response body: %w", err)
		reporting.Report(ctx, err)
		return nil, -1, time.Time{}, err
	}

	logger.InfoContext(ctx, "schedule request completed", "url", url, "status", resp.StatusCode, "duration", queriedAt.Sub(start).String())

	return data, resp.StatusCode, queriedAt, nil
}

func NewNHLAPI(httpClient HttpClient, baseURL string, requestLimiter ratelimiting.RequestLimiter, nowFunc func() time.Time) NHLAPI {
	return &nhlAPIImpl{
		httpClient:     httpClient,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		requestLimiter: requestLimiter,
		nowFunc:        nowFunc,
	}
}
