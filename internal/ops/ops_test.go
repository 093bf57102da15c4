package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phantom-air/irops/internal/models"
)

// fakeQuerier serves canned projections with per-query error injection.
type fakeQuerier struct {
	summary models.OpsSummary
	hubs    []models.HubStat
	trend   []models.OTPPoint
	ghosts  []models.GhostFlight
	events  []models.DisruptionEvent

	summaryErr error
	hubsErr    error
	trendErr   error
	ghostsErr  error
	eventsErr  error
}

func (f *fakeQuerier) FlightSummary(ctx context.Context, tr models.TimeRange) (models.OpsSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeQuerier) HubStats(ctx context.Context, tr models.TimeRange) ([]models.HubStat, error) {
	return f.hubs, f.hubsErr
}

func (f *fakeQuerier) OTPTrend(ctx context.Context, tr models.TimeRange) ([]models.OTPPoint, error) {
	return f.trend, f.trendErr
}

func (f *fakeQuerier) GhostFlights(ctx context.Context) ([]models.GhostFlight, error) {
	return f.ghosts, f.ghostsErr
}

func (f *fakeQuerier) DisruptionEvents(ctx context.Context) ([]models.DisruptionEvent, error) {
	return f.events, f.eventsErr
}

func TestService_Dashboard(t *testing.T) {
	q := &fakeQuerier{
		summary: models.OpsSummary{TotalFlights: 412, DelayedFlights: 37, OnTimeFlights: 350},
		hubs: []models.HubStat{
			{Origin: "ATL", FlightCount: 120, DelayedCount: 14, AvgDelay: 22.5},
		},
		trend: []models.OTPPoint{
			{Label: "08:00", OTP: 91.2, Flights: 40},
			{Label: "09:00", OTP: 88.0, Flights: 55},
		},
	}
	svc := NewService(q)

	d, err := svc.Dashboard(context.Background(), models.RangeToday)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.TimeRange != models.RangeToday {
		t.Errorf("expected time range today, got %s", d.TimeRange)
	}
	if d.Summary.TotalFlights != 412 {
		t.Errorf("expected 412 flights, got %d", d.Summary.TotalFlights)
	}
	if len(d.HubStats) != 1 || len(d.OTPTrend) != 2 {
		t.Errorf("unexpected projections: %d hubs, %d trend points", len(d.HubStats), len(d.OTPTrend))
	}
}

func TestService_Dashboard_NoPartialResults(t *testing.T) {
	q := &fakeQuerier{
		summary: models.OpsSummary{TotalFlights: 100},
		hubsErr: errors.New("warehouse timeout"),
	}
	svc := NewService(q)

	d, err := svc.Dashboard(context.Background(), models.RangeNext2Hours)
	if err == nil {
		t.Fatal("expected the hub query failure to propagate")
	}
	if d != nil {
		t.Errorf("expected no partial dashboard, got %+v", d)
	}
}

func TestService_Disruptions_TotalsIgnoreFilter(t *testing.T) {
	q := &fakeQuerier{events: []models.DisruptionEvent{
		{ID: "D1", Hub: "ATL", Severity: models.SeverityCritical, Passengers: 300, EstCostK: 450},
		{ID: "D2", Hub: "DTW", Severity: models.SeveritySevere, Passengers: 150, EstCostK: 120},
		{ID: "D3", Hub: "ATL", Severity: models.SeverityMinor, Passengers: 40, EstCostK: 15},
	}}
	svc := NewService(q)

	report, err := svc.Disruptions(context.Background(), EventFilter{Hub: "ATL"})
	if err != nil {
		t.Fatalf("Disruptions: %v", err)
	}
	if len(report.Events) != 2 {
		t.Errorf("expected 2 ATL events, got %d", len(report.Events))
	}

	want := EventTotals{Active: 3, Critical: 1, Severe: 1, PassengersAffected: 490, TotalCostK: 585}
	if diff := cmp.Diff(want, report.Totals); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterEvents(t *testing.T) {
	events := []models.DisruptionEvent{
		{ID: "D1", Hub: "ATL", Type: "WEATHER", Severity: models.SeverityCritical, EstCostK: 450},
		{ID: "D2", Hub: "ATL", Type: "CREW", Severity: models.SeverityModerate, EstCostK: 60},
		{ID: "D3", Hub: "JFK", Type: "WEATHER", Severity: models.SeveritySevere, EstCostK: 200},
	}

	got := FilterEvents(events, EventFilter{Types: []string{"WEATHER"}})
	if len(got) != 2 || got[0].ID != "D1" || got[1].ID != "D3" {
		t.Errorf("type filter mismatch: %+v", got)
	}

	got = FilterEvents(events, EventFilter{Severities: []models.DisruptionSeverity{models.SeverityCritical}})
	if len(got) != 1 || got[0].ID != "D1" {
		t.Errorf("severity filter mismatch: %+v", got)
	}

	got = FilterEvents(events, EventFilter{CostAlerts: true, MinCostK: 100})
	if len(got) != 2 {
		t.Errorf("cost filter mismatch: %+v", got)
	}

	// MinCostK alone is inert without CostAlerts.
	got = FilterEvents(events, EventFilter{MinCostK: 100})
	if len(got) != 3 {
		t.Errorf("expected cost threshold ignored without alerts flag, got %d events", len(got))
	}
}
