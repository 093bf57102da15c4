// Package ops builds the operator-facing views: the flight status
// dashboard, ghost-flight triage, and disruption cost analytics. It
// consumes typed projections only; all SQL lives in the warehouse
// client.
package ops

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/phantom-air/irops/internal/models"
)

// Querier is the slice of the warehouse client this package needs.
type Querier interface {
	FlightSummary(ctx context.Context, tr models.TimeRange) (models.OpsSummary, error)
	HubStats(ctx context.Context, tr models.TimeRange) ([]models.HubStat, error)
	OTPTrend(ctx context.Context, tr models.TimeRange) ([]models.OTPPoint, error)
	GhostFlights(ctx context.Context) ([]models.GhostFlight, error)
	DisruptionEvents(ctx context.Context) ([]models.DisruptionEvent, error)
}

// Service answers dashboard requests against a warehouse querier.
type Service struct {
	q Querier
}

// NewService creates the dashboard service.
func NewService(q Querier) *Service {
	return &Service{q: q}
}

// Dashboard is one rendered dashboard payload.
type Dashboard struct {
	TimeRange models.TimeRange  `json:"time_range"`
	Summary   models.OpsSummary `json:"summary"`
	HubStats  []models.HubStat  `json:"hub_stats"`
	OTPTrend  []models.OTPPoint `json:"otp_trend"`
}

// Dashboard fetches the three dashboard projections concurrently. Any
// failure cancels the others and propagates; partial dashboards are
// never returned.
func (s *Service) Dashboard(ctx context.Context, tr models.TimeRange) (*Dashboard, error) {
	d := &Dashboard{TimeRange: tr}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.q.FlightSummary(ctx, tr)
		if err != nil {
			return err
		}
		d.Summary = summary
		return nil
	})
	g.Go(func() error {
		hubs, err := s.q.HubStats(ctx, tr)
		if err != nil {
			return err
		}
		d.HubStats = hubs
		return nil
	})
	g.Go(func() error {
		trend, err := s.q.OTPTrend(ctx, tr)
		if err != nil {
			return err
		}
		d.OTPTrend = trend
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
