package ops

import (
	"context"

	"github.com/phantom-air/irops/internal/models"
)

// EventFilter narrows the disruption event list. Zero values mean "no
// filter" except MinCostK, which only applies when CostAlerts is set.
type EventFilter struct {
	Hub        string
	Types      []string
	Severities []models.DisruptionSeverity
	CostAlerts bool
	MinCostK   float64
}

// FilterEvents applies the operator's filters, preserving input order.
func FilterEvents(events []models.DisruptionEvent, f EventFilter) []models.DisruptionEvent {
	out := make([]models.DisruptionEvent, 0, len(events))
	for _, e := range events {
		if f.Hub != "" && e.Hub != f.Hub {
			continue
		}
		if len(f.Types) > 0 && !containsString(f.Types, e.Type) {
			continue
		}
		if len(f.Severities) > 0 && !containsSeverity(f.Severities, e.Severity) {
			continue
		}
		if f.CostAlerts && e.EstCostK < f.MinCostK {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EventTotals is the metric row above the disruption table. Cost is
// summed in thousands of dollars.
type EventTotals struct {
	Active             int     `json:"active"`
	Critical           int     `json:"critical"`
	Severe             int     `json:"severe"`
	PassengersAffected int     `json:"passengers_affected"`
	TotalCostK         float64 `json:"total_cost_k"`
}

// SummarizeEvents totals the unfiltered event list; the metric row
// always reflects the full day regardless of operator filters.
func SummarizeEvents(events []models.DisruptionEvent) EventTotals {
	var t EventTotals
	t.Active = len(events)
	for _, e := range events {
		switch e.Severity {
		case models.SeverityCritical:
			t.Critical++
		case models.SeveritySevere:
			t.Severe++
		}
		t.PassengersAffected += e.Passengers
		t.TotalCostK += e.EstCostK
	}
	return t
}

// DisruptionReport is the disruption-analytics payload.
type DisruptionReport struct {
	Events []models.DisruptionEvent `json:"events"`
	Totals EventTotals              `json:"totals"`
}

// Disruptions fetches today's events, totals the full list, then
// applies the filter to the table rows.
func (s *Service) Disruptions(ctx context.Context, f EventFilter) (*DisruptionReport, error) {
	events, err := s.q.DisruptionEvents(ctx)
	if err != nil {
		return nil, err
	}
	return &DisruptionReport{
		Events: FilterEvents(events, f),
		Totals: SummarizeEvents(events),
	}, nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsSeverity(list []models.DisruptionSeverity, v models.DisruptionSeverity) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
