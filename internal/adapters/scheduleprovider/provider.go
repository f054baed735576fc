package scheduleprovider

import (
	"context"
	"fmt"

	"github.com/rinkstats/streaks/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ScheduleProvider interface {
	GetSchedule(ctx context.Context) (domain.Schedule, error)
}

type nhlScheduleProvider struct {
	api NHLAPI

	requestCount metric.Int64Counter
}

func NewNHLScheduleProvider(api NHLAPI) (ScheduleProvider, error) {
	meter := otel.Meter("scheduleprovider/nhl_provider")
	requestCount, err := meter.Int64Counter("scheduleprovider/request_count")
	if err != nil {
		return nil, fmt.Errorf("failed to create request count metric: %w", err)
	}

	return &nhlScheduleProvider{
		api:          api,
		requestCount: requestCount,
	}, nil
}

func (p *nhlScheduleProvider) GetSchedule(ctx context.Context) (domain.Schedule, error) {
	data, statusCode, queriedAt, err := p.api.GetScheduleData(ctx)
	if err != nil {
		// NOTE: NHLAPI implementations handle their own error reporting
		p.requestCount.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", false)))
		return domain.Schedule{}, fmt.Errorf("failed to get schedule data: %w", err)
	}

	schedule, err := NHLResponseToSchedule(ctx, data, statusCode, queriedAt)
	p.requestCount.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", err == nil), attribute.Int("status_code", statusCode)))
	if err != nil {
		// NOTE: NHLResponseToSchedule handles its own error reporting
		return domain.Schedule{}, fmt.Errorf("failed to convert schedule response: %w", err)
	}

	return schedule, nil
}
